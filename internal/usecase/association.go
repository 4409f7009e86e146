package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/metrics"
)

var tracer = otel.Tracer("usecase")

// AssociationSynchronizer replaces an owner's related set after validating the
// owner, the cardinality limit and every target, in that order.
type AssociationSynchronizer struct {
	tx     Transactor
	oracle *ExistenceOracle
	repo   AssociationRepository
}

func NewAssociationSynchronizer(tx Transactor, oracle *ExistenceOracle, repo AssociationRepository) *AssociationSynchronizer {
	return &AssociationSynchronizer{
		tx:     tx,
		oracle: oracle,
		repo:   repo,
	}
}

// Sync makes targetIDs the exact association set of ownerID. Duplicate ids
// collapse and an empty slice clears the set. It returns the ids that were
// stored, in first-seen order.
func (s *AssociationSynchronizer) Sync(ctx context.Context, rel domain.Relationship, ownerID int64, targetIDs []int64) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "Association.Usecase.Sync")
	defer span.End()

	span.SetAttributes(
		attribute.String("relationship", rel.Name),
		attribute.Int64("owner", ownerID),
		attribute.Int("targets", len(targetIDs)),
	)

	start := time.Now()
	var applied []int64
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.oracle.RequireForUpdate(ctx, rel.Owner, ownerID); err != nil {
			return err
		}

		if rel.Limited(len(targetIDs)) {
			return domain.ValidationError{
				Reason: fmt.Sprintf("a %s can only have %d %s associations", rel.Owner, rel.Limit, rel.Related),
			}
		}

		ids := dedupe(targetIDs)
		for _, id := range ids {
			if err := s.oracle.Require(ctx, rel.Related, id); err != nil {
				return err
			}
		}

		if err := s.repo.Replace(ctx, rel, ownerID, ids); err != nil {
			return err
		}
		applied = ids
		return nil
	})

	metrics.AssociationSyncDuration.WithLabelValues(rel.Name).Observe(time.Since(start).Seconds())
	metrics.AssociationSyncTotal.WithLabelValues(rel.Name, resultOf(err)).Inc()

	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return applied, nil
}

// Clear removes every association of ownerID without validation. It is meant for
// cascades inside a transaction that already holds the owner.
func (s *AssociationSynchronizer) Clear(ctx context.Context, rel domain.Relationship, ownerID int64) error {
	return s.repo.Replace(ctx, rel, ownerID, []int64{})
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
