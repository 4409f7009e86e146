package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/filmapi/internal/domain"
	"github.com/totegamma/filmapi/internal/metrics"
)

// Policy carries the rules that make the generic CRUD usecase behave like one
// particular entity.
type Policy[T any] struct {
	Kind domain.Kind
	// ID reads the store-assigned identifier of an entity.
	ID func(T) int64
	// BeforeAdd runs inside the Add transaction, before the insert.
	BeforeAdd func(ctx context.Context, entity T) error
	// Cascade lists the relationships cleared before the row is deleted.
	Cascade []domain.Relationship
}

// CrudUsecase implements the scalar operations shared by every entity kind.
type CrudUsecase[T any] struct {
	tx     Transactor
	oracle *ExistenceOracle
	sync   *AssociationSynchronizer
	events EventPublisher
	repo   EntityRepository[T]
	policy Policy[T]
}

func NewCrudUsecase[T any](catalog *Catalog, repo EntityRepository[T], policy Policy[T]) *CrudUsecase[T] {
	return &CrudUsecase[T]{
		tx:     catalog.Tx,
		oracle: catalog.Oracle,
		sync:   catalog.Sync,
		events: catalog.Events,
		repo:   repo,
		policy: policy,
	}
}

func (uc *CrudUsecase[T]) GetAll(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, uc.spanName("GetAll"))
	defer span.End()

	var result []T
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.repo.FindAll(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

func (uc *CrudUsecase[T]) GetByID(ctx context.Context, id int64) (T, error) {
	ctx, span := tracer.Start(ctx, uc.spanName("GetByID"))
	defer span.End()

	var result T
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.oracle.Require(ctx, uc.policy.Kind, id); err != nil {
			return err
		}
		var err error
		result, err = uc.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, err
	}
	return result, nil
}

// Add inserts entity and returns it with its assigned identifier.
func (uc *CrudUsecase[T]) Add(ctx context.Context, entity T) (T, error) {
	ctx, span := tracer.Start(ctx, uc.spanName("Add"))
	defer span.End()

	var created T
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if uc.policy.BeforeAdd != nil {
			if err := uc.policy.BeforeAdd(ctx, entity); err != nil {
				return err
			}
		}
		var err error
		created, err = uc.repo.Insert(ctx, entity)
		return err
	})
	uc.count("add", err)
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, err
	}

	id := uc.policy.ID(created)
	span.SetAttributes(attribute.Int64("id", id))
	uc.emit(ctx, domain.EventCreated, id, nil)
	return created, nil
}

// Update overwrites the scalar fields of the row with id. Relationship fields of
// entity are ignored.
func (uc *CrudUsecase[T]) Update(ctx context.Context, id int64, entity T) (T, error) {
	ctx, span := tracer.Start(ctx, uc.spanName("Update"))
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	var updated T
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.oracle.RequireForUpdate(ctx, uc.policy.Kind, id); err != nil {
			return err
		}
		if err := uc.repo.UpdateScalars(ctx, id, entity); err != nil {
			return err
		}
		var err error
		updated, err = uc.repo.FindByID(ctx, id)
		return err
	})
	uc.count("update", err)
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, err
	}

	uc.emit(ctx, domain.EventUpdated, id, nil)
	return updated, nil
}

// Delete clears the entity's cascaded relationships and removes the row.
func (uc *CrudUsecase[T]) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, uc.spanName("Delete"))
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.oracle.RequireForUpdate(ctx, uc.policy.Kind, id); err != nil {
			return err
		}
		for _, rel := range uc.policy.Cascade {
			if err := uc.sync.Clear(ctx, rel, id); err != nil {
				return err
			}
		}
		return uc.repo.Delete(ctx, id)
	})
	uc.count("delete", err)
	if err != nil {
		span.RecordError(err)
		return err
	}

	uc.emit(ctx, domain.EventDeleted, id, nil)
	return nil
}

// syncAssociations runs the synchronizer for one of the entity's relationships
// and announces the new set.
func (uc *CrudUsecase[T]) syncAssociations(ctx context.Context, rel domain.Relationship, id int64, targetIDs []int64) error {
	applied, err := uc.sync.Sync(ctx, rel, id, targetIDs)
	if err != nil {
		return err
	}
	uc.emit(ctx, domain.EventAssociations, id, applied)
	return nil
}

// require checks that the row with id exists, joining any open transaction.
func (uc *CrudUsecase[T]) require(ctx context.Context, id int64) error {
	return uc.oracle.Require(ctx, uc.policy.Kind, id)
}

func (uc *CrudUsecase[T]) emit(ctx context.Context, typ domain.EventType, id int64, related []int64) {
	err := uc.events.Publish(ctx, domain.Event{
		Type:    typ,
		Kind:    uc.policy.Kind,
		ID:      id,
		Related: related,
		Time:    time.Now().UTC(),
	})
	if err != nil {
		// the change is already committed
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func (uc *CrudUsecase[T]) count(operation string, err error) {
	metrics.EntityMutationsTotal.WithLabelValues(string(uc.policy.Kind), operation, resultOf(err)).Inc()
}

func (uc *CrudUsecase[T]) spanName(op string) string {
	return string(uc.policy.Kind) + ".Usecase." + op
}
