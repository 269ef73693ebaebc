// README: Per-caller monthly allowance of plan generations.
package quota

import (
	"context"
	"errors"
	"fmt"
)

// Service orchestrates quota checks.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Use consumes one plan generation for uid. Unknown callers are initialised
// and charged in the same call.
func (s *Service) Use(ctx context.Context, uid string) error {
	if uid == "" {
		return fmt.Errorf("quota: empty uid")
	}
	err := s.store.Use(ctx, uid)
	if !errors.Is(err, ErrQuotaExceeded) {
		return err
	}

	// Row may be missing: create it, then retry the deduction once.
	if initErr := s.store.Ensure(ctx, uid); initErr != nil {
		return initErr
	}
	return s.store.Use(ctx, uid)
}

// Remaining returns the caller's allowance for the current month.
func (s *Service) Remaining(ctx context.Context, uid string) (int, error) {
	return s.store.Remaining(ctx, uid)
}
