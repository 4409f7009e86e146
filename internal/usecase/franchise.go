package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/filmapi/internal/domain"
)

// FranchiseUsecase serves franchises, their movies and the characters of those movies.
type FranchiseUsecase struct {
	*CrudUsecase[domain.Franchise]
	movies     MovieRepository
	characters CharacterRepository
}

func NewFranchiseUsecase(catalog *Catalog, repo FranchiseRepository, movies MovieRepository, characters CharacterRepository) *FranchiseUsecase {
	return &FranchiseUsecase{
		CrudUsecase: NewCrudUsecase[domain.Franchise](catalog, repo, Policy[domain.Franchise]{
			Kind:    domain.KindFranchise,
			ID:      func(f domain.Franchise) int64 { return f.ID },
			Cascade: []domain.Relationship{domain.FranchiseMovies},
		}),
		movies:     movies,
		characters: characters,
	}
}

// UpdateMovies makes movieIDs the exact movie set of the franchise. Movies that
// belonged to another franchise are moved.
func (uc *FranchiseUsecase) UpdateMovies(ctx context.Context, id int64, movieIDs []int64) error {
	ctx, span := tracer.Start(ctx, "Franchise.Usecase.UpdateMovies")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	err := uc.syncAssociations(ctx, domain.FranchiseMovies, id, movieIDs)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (uc *FranchiseUsecase) GetMovies(ctx context.Context, id int64) ([]domain.Movie, error) {
	ctx, span := tracer.Start(ctx, "Franchise.Usecase.GetMovies")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	var result []domain.Movie
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.require(ctx, id); err != nil {
			return err
		}
		var err error
		result, err = uc.movies.FindByFranchise(ctx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

// GetCharacters lists every character appearing in at least one movie of the
// franchise, each once.
func (uc *FranchiseUsecase) GetCharacters(ctx context.Context, id int64) ([]domain.Character, error) {
	ctx, span := tracer.Start(ctx, "Franchise.Usecase.GetCharacters")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	var result []domain.Character
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.require(ctx, id); err != nil {
			return err
		}
		var err error
		result, err = uc.characters.FindByFranchise(ctx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}
