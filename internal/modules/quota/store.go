package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_quota persistence.
type Store struct {
	db      *pgxpool.Pool
	monthly int
	now     func() time.Time
}

// NewStore returns a Store granting monthly plans per caller and period.
func NewStore(db *pgxpool.Pool, monthly int) *Store {
	if monthly <= 0 {
		monthly = DefaultMonthlyPlans
	}
	return &Store{db: db, monthly: monthly, now: time.Now}
}

func (s *Store) period() string {
	return s.now().UTC().Format(periodLayout)
}

// Use atomically deducts one generation, resetting the allowance when the
// stored period is behind the current month. It returns ErrQuotaExceeded when
// no row was updated (allowance exhausted or caller absent).
func (s *Store) Use(ctx context.Context, uid string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE generation_quota SET
			plans_remaining = CASE WHEN period <> $1 THEN $2 - 1 ELSE plans_remaining - 1 END,
			period = $1,
			updated_at = NOW()
		WHERE uid = $3 AND (period < $1 OR plans_remaining > 0)
	`, s.period(), s.monthly, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExceeded
	}
	return nil
}

// Ensure inserts the caller with a full allowance; existing rows are left alone.
func (s *Store) Ensure(ctx context.Context, uid string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_quota (uid, plans_remaining, period)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, s.monthly, s.period())
	return err
}

// Remaining reports the caller's allowance for the current period. Callers
// without a row have not generated anything yet and get the full allowance.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	var remaining int
	var period string
	err := s.db.QueryRow(ctx,
		`SELECT plans_remaining, period FROM generation_quota WHERE uid = $1`, uid,
	).Scan(&remaining, &period)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.monthly, nil
	}
	if err != nil {
		return 0, err
	}
	if period != s.period() {
		return s.monthly, nil
	}
	return remaining, nil
}
