package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/filmapi/internal/domain"
)

// MovieUsecase serves movies and their character set.
type MovieUsecase struct {
	*CrudUsecase[domain.Movie]
	characters CharacterRepository
}

func NewMovieUsecase(catalog *Catalog, repo MovieRepository, characters CharacterRepository) *MovieUsecase {
	oracle := catalog.Oracle
	return &MovieUsecase{
		CrudUsecase: NewCrudUsecase[domain.Movie](catalog, repo, Policy[domain.Movie]{
			Kind: domain.KindMovie,
			ID:   func(m domain.Movie) int64 { return m.ID },
			BeforeAdd: func(ctx context.Context, m domain.Movie) error {
				if m.FranchiseID == nil {
					return domain.ValidationError{Reason: "a movie must belong to a franchise"}
				}
				return oracle.Require(ctx, domain.KindFranchise, *m.FranchiseID)
			},
			Cascade: []domain.Relationship{domain.MovieCharacters},
		}),
		characters: characters,
	}
}

// UpdateCharacters replaces the characters featured in a movie.
func (uc *MovieUsecase) UpdateCharacters(ctx context.Context, id int64, characterIDs []int64) error {
	ctx, span := tracer.Start(ctx, "Movie.Usecase.UpdateCharacters")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	err := uc.syncAssociations(ctx, domain.MovieCharacters, id, characterIDs)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// GetCharacters lists the characters featured in a movie.
func (uc *MovieUsecase) GetCharacters(ctx context.Context, id int64) ([]domain.Character, error) {
	ctx, span := tracer.Start(ctx, "Movie.Usecase.GetCharacters")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	var result []domain.Character
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.require(ctx, id); err != nil {
			return err
		}
		var err error
		result, err = uc.characters.FindByMovie(ctx, id)
		return err
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}
