package service

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyClaimed   = errors.New("offer already claimed")
	ErrInvalidReferrer  = errors.New("referrer cannot be the offer owner")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeError translates a repository error for the operation op.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, repository.ErrAlreadyClaimed):
		return fmt.Errorf("%s: %w", op, ErrAlreadyClaimed)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
