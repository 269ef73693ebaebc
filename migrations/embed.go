// README: Embedded goose migrations applied at server start and in DB-backed tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
