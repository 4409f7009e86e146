package usecase

import (
	"context"

	"github.com/totegamma/filmapi/internal/domain"
)

// ExistenceOracle fails fast on references to rows that do not exist.
type ExistenceOracle struct {
	checker ExistenceChecker
}

func NewExistenceOracle(checker ExistenceChecker) *ExistenceOracle {
	return &ExistenceOracle{checker: checker}
}

// Exists reports whether a row of kind with id exists. Store-assigned ids are
// positive, so anything else is absent without a lookup.
func (o *ExistenceOracle) Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return o.checker.Exists(ctx, kind, id)
}

// Require turns absence into a NotFoundError.
func (o *ExistenceOracle) Require(ctx context.Context, kind domain.Kind, id int64) error {
	ok, err := o.Exists(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}

// RequireForUpdate is Require plus a write lock on the row.
func (o *ExistenceOracle) RequireForUpdate(ctx context.Context, kind domain.Kind, id int64) error {
	if id <= 0 {
		return domain.NotFoundError{Kind: kind, ID: id}
	}
	ok, err := o.checker.LockForUpdate(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Kind: kind, ID: id}
	}
	return nil
}
