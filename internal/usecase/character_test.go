package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/filmapi/internal/domain"
)

func TestCharacterUpdateMovies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.characters.UpdateMovies(ctx, 2, []int64{1})
	require.NoError(t, err)

	c, err := f.characters.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, c.Movies)

	err = f.characters.UpdateMovies(ctx, 2, []int64{1, 2, 3, 4, 5, 6})
	require.ErrorIs(t, err, domain.ErrValidation)

	c, err = f.characters.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, c.Movies)
}

func TestCharacterUpdateMoviesEmitsEvent(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.characters.UpdateMovies(context.Background(), 3, []int64{1, 1, 2}))
	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, domain.EventAssociations, ev.Type)
	assert.Equal(t, domain.KindCharacter, ev.Kind)
	assert.Equal(t, int64(3), ev.ID)
	assert.Equal(t, []int64{1, 2}, ev.Related)
}

func TestCharacterUpdateMoviesFailureEmitsNothing(t *testing.T) {
	f := newFixture()

	err := f.characters.UpdateMovies(context.Background(), 3, []int64{9})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.events.events)
}

func TestCharacterMovieLimitIsConfigurable(t *testing.T) {
	f := newFixture()
	uc := NewCharacterUsecase(f.catalog, memCharacterRepo{f.store}, 2)

	err := uc.UpdateMovies(context.Background(), 1, []int64{1, 2, 3})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "a Character can only have 2 Movie associations")

	require.NoError(t, uc.UpdateMovies(context.Background(), 1, []int64{1, 2}))
}

func TestCharacterGetAll(t *testing.T) {
	f := newFixture()

	all, err := f.characters.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "John Smith", all[0].FullName)
	assert.Equal(t, []int64{1}, all[0].Movies)
	assert.Equal(t, []int64{1, 2}, all[1].Movies)
	assert.Equal(t, []int64{3}, all[2].Movies)
}

func TestCharacterGetByIDMissing(t *testing.T) {
	f := newFixture()

	_, err := f.characters.GetByID(context.Background(), 4)
	assert.Equal(t, domain.NotFoundError{Kind: domain.KindCharacter, ID: 4}, err)
}

func TestCharacterAddAssignsID(t *testing.T) {
	f := newFixture()

	c, err := f.characters.Add(context.Background(), domain.Character{FullName: "Peter Parker", Movies: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	// relationships are never written through Add
	assert.Empty(t, c.Movies)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.EventCreated, f.events.events[0].Type)
	assert.Equal(t, int64(4), f.events.events[0].ID)
}

func TestCharacterUpdateIsScalarOnly(t *testing.T) {
	f := newFixture()

	updated, err := f.characters.Update(context.Background(), 2, domain.Character{FullName: "Diana Prince", Gender: "Female", Movies: []int64{3}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.ID)
	assert.Equal(t, "Diana Prince", updated.FullName)
	assert.Equal(t, []int64{1, 2}, updated.Movies)
}

func TestCharacterUpdateMissing(t *testing.T) {
	f := newFixture()

	_, err := f.characters.Update(context.Background(), 7, domain.Character{FullName: "Nobody"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.store.writes)
	assert.Empty(t, f.events.events)
}

func TestCharacterDeleteRemovesEdges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.characters.Delete(ctx, 2))

	_, err := f.characters.GetByID(ctx, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)

	for _, movieID := range []int64{1, 2} {
		chars, err := f.movies.GetCharacters(ctx, movieID)
		require.NoError(t, err)
		for _, c := range chars {
			assert.NotEqual(t, int64(2), c.ID)
		}
	}
	assert.Equal(t, []int64{1}, f.store.charactersOf(1))
}

func TestCharacterDeleteMissing(t *testing.T) {
	f := newFixture()

	err := f.characters.Delete(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.store.writes)
}

func TestPublishFailureDoesNotFailCommittedOperation(t *testing.T) {
	f := newFixture()
	f.events.err = errStoreDown

	_, err := f.characters.Add(context.Background(), domain.Character{FullName: "Peter Parker"})
	require.NoError(t, err)
	assert.Len(t, f.store.characters, 4)
}
