package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/filmapi/internal/domain"
)

// CharacterUsecase serves characters and their movie set.
type CharacterUsecase struct {
	*CrudUsecase[domain.Character]
	movies domain.Relationship
}

// NewCharacterUsecase builds the character service. movieLimit caps the movie set
// of one character; zero keeps the default.
func NewCharacterUsecase(catalog *Catalog, repo CharacterRepository, movieLimit int) *CharacterUsecase {
	rel := domain.CharacterMovies
	if movieLimit > 0 {
		rel = rel.WithLimit(movieLimit)
	}
	return &CharacterUsecase{
		CrudUsecase: NewCrudUsecase[domain.Character](catalog, repo, Policy[domain.Character]{
			Kind:    domain.KindCharacter,
			ID:      func(c domain.Character) int64 { return c.ID },
			Cascade: []domain.Relationship{rel},
		}),
		movies: rel,
	}
}

// UpdateMovies replaces the movies a character appears in.
func (uc *CharacterUsecase) UpdateMovies(ctx context.Context, id int64, movieIDs []int64) error {
	ctx, span := tracer.Start(ctx, "Character.Usecase.UpdateMovies")
	defer span.End()
	span.SetAttributes(attribute.Int64("id", id))

	err := uc.syncAssociations(ctx, uc.movies, id, movieIDs)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
