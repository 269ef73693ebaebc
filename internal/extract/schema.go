package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema wraps every structural mismatch reported by ValidateSchema.
var ErrSchema = errors.New("extract: document does not match schema")

// ValidateSchema checks doc against a JSON schema given as a Go value.
func ValidateSchema(doc json.RawMessage, schema map[string]any) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: empty document", ErrSchema)
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}
