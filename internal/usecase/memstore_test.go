package usecase

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/totegamma/filmapi/internal/domain"
)

// memStore is an in-memory implementation of every store port. Transactions
// snapshot the whole store and restore it when fn fails.
type memStore struct {
	nextID     map[domain.Kind]int64
	characters map[int64]domain.Character
	movies     map[int64]domain.Movie
	franchises map[int64]domain.Franchise
	// edges holds character/movie pairs
	edges  map[[2]int64]struct{}
	writes int
	fault  error
}

type memTxKey struct{}

var errStoreDown = errors.New("store unavailable")

func newMemStore() *memStore {
	return &memStore{
		nextID:     map[domain.Kind]int64{},
		characters: map[int64]domain.Character{},
		movies:     map[int64]domain.Movie{},
		franchises: map[int64]domain.Franchise{},
		edges:      map[[2]int64]struct{}{},
	}
}

type memSnapshot struct {
	nextID     map[domain.Kind]int64
	characters map[int64]domain.Character
	movies     map[int64]domain.Movie
	franchises map[int64]domain.Franchise
	edges      map[[2]int64]struct{}
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		nextID:     maps.Clone(s.nextID),
		characters: maps.Clone(s.characters),
		movies:     maps.Clone(s.movies),
		franchises: maps.Clone(s.franchises),
		edges:      maps.Clone(s.edges),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.nextID = snap.nextID
	s.characters = snap.characters
	s.movies = snap.movies
	s.franchises = snap.franchises
	s.edges = snap.edges
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	snap := s.snapshot()
	err := fn(context.WithValue(ctx, memTxKey{}, true))
	if err != nil {
		s.restore(snap)
	}
	return err
}

func (s *memStore) Exists(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	if s.fault != nil {
		return false, s.fault
	}
	switch kind {
	case domain.KindCharacter:
		_, ok := s.characters[id]
		return ok, nil
	case domain.KindMovie:
		_, ok := s.movies[id]
		return ok, nil
	case domain.KindFranchise:
		_, ok := s.franchises[id]
		return ok, nil
	}
	return false, errors.New("unknown kind")
}

func (s *memStore) LockForUpdate(ctx context.Context, kind domain.Kind, id int64) (bool, error) {
	return s.Exists(ctx, kind, id)
}

func (s *memStore) Replace(ctx context.Context, rel domain.Relationship, ownerID int64, targetIDs []int64) error {
	if s.fault != nil {
		return s.fault
	}
	s.writes++
	switch rel.Name {
	case domain.CharacterMovies.Name:
		for edge := range s.edges {
			if edge[0] == ownerID {
				delete(s.edges, edge)
			}
		}
		for _, id := range targetIDs {
			s.edges[[2]int64{ownerID, id}] = struct{}{}
		}
	case domain.MovieCharacters.Name:
		for edge := range s.edges {
			if edge[1] == ownerID {
				delete(s.edges, edge)
			}
		}
		for _, id := range targetIDs {
			s.edges[[2]int64{id, ownerID}] = struct{}{}
		}
	case domain.FranchiseMovies.Name:
		for id, m := range s.movies {
			if m.FranchiseID != nil && *m.FranchiseID == ownerID {
				m.FranchiseID = nil
				s.movies[id] = m
			}
		}
		for _, id := range targetIDs {
			m := s.movies[id]
			owner := ownerID
			m.FranchiseID = &owner
			s.movies[id] = m
		}
	default:
		return errors.New("unknown relationship")
	}
	return nil
}

func (s *memStore) assign(kind domain.Kind) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

func (s *memStore) moviesOf(characterID int64) []int64 {
	ids := []int64{}
	for edge := range s.edges {
		if edge[0] == characterID {
			ids = append(ids, edge[1])
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *memStore) charactersOf(movieID int64) []int64 {
	ids := []int64{}
	for edge := range s.edges {
		if edge[1] == movieID {
			ids = append(ids, edge[0])
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *memStore) franchiseMovies(franchiseID int64) []int64 {
	ids := []int64{}
	for id, m := range s.movies {
		if m.FranchiseID != nil && *m.FranchiseID == franchiseID {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *memStore) character(id int64) domain.Character {
	c := s.characters[id]
	c.Movies = s.moviesOf(id)
	return c
}

func (s *memStore) movie(id int64) domain.Movie {
	m := s.movies[id]
	m.Characters = s.charactersOf(id)
	return m
}

func (s *memStore) franchise(id int64) domain.Franchise {
	f := s.franchises[id]
	f.Movies = s.franchiseMovies(id)
	return f
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

type memCharacterRepo struct{ s *memStore }

func (r memCharacterRepo) FindAll(ctx context.Context) ([]domain.Character, error) {
	result := []domain.Character{}
	for _, id := range sortedKeys(r.s.characters) {
		result = append(result, r.s.character(id))
	}
	return result, nil
}

func (r memCharacterRepo) FindByID(ctx context.Context, id int64) (domain.Character, error) {
	if _, ok := r.s.characters[id]; !ok {
		return domain.Character{}, domain.NotFoundError{Kind: domain.KindCharacter, ID: id}
	}
	return r.s.character(id), nil
}

func (r memCharacterRepo) Insert(ctx context.Context, c domain.Character) (domain.Character, error) {
	if r.s.fault != nil {
		return domain.Character{}, r.s.fault
	}
	r.s.writes++
	c.ID = r.s.assign(domain.KindCharacter)
	c.Movies = nil
	r.s.characters[c.ID] = c
	return r.s.character(c.ID), nil
}

func (r memCharacterRepo) UpdateScalars(ctx context.Context, id int64, c domain.Character) error {
	r.s.writes++
	c.ID = id
	c.Movies = nil
	r.s.characters[id] = c
	return nil
}

func (r memCharacterRepo) Delete(ctx context.Context, id int64) error {
	r.s.writes++
	delete(r.s.characters, id)
	return nil
}

func (r memCharacterRepo) FindByMovie(ctx context.Context, movieID int64) ([]domain.Character, error) {
	result := []domain.Character{}
	for _, id := range r.s.charactersOf(movieID) {
		result = append(result, r.s.character(id))
	}
	return result, nil
}

func (r memCharacterRepo) FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Character, error) {
	seen := map[int64]struct{}{}
	for _, movieID := range r.s.franchiseMovies(franchiseID) {
		for _, id := range r.s.charactersOf(movieID) {
			seen[id] = struct{}{}
		}
	}
	result := []domain.Character{}
	for _, id := range slices.Sorted(maps.Keys(seen)) {
		result = append(result, r.s.character(id))
	}
	return result, nil
}

type memMovieRepo struct{ s *memStore }

func (r memMovieRepo) FindAll(ctx context.Context) ([]domain.Movie, error) {
	result := []domain.Movie{}
	for _, id := range sortedKeys(r.s.movies) {
		result = append(result, r.s.movie(id))
	}
	return result, nil
}

func (r memMovieRepo) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	if _, ok := r.s.movies[id]; !ok {
		return domain.Movie{}, domain.NotFoundError{Kind: domain.KindMovie, ID: id}
	}
	return r.s.movie(id), nil
}

func (r memMovieRepo) Insert(ctx context.Context, m domain.Movie) (domain.Movie, error) {
	r.s.writes++
	m.ID = r.s.assign(domain.KindMovie)
	m.Characters = nil
	r.s.movies[m.ID] = m
	return r.s.movie(m.ID), nil
}

func (r memMovieRepo) UpdateScalars(ctx context.Context, id int64, m domain.Movie) error {
	r.s.writes++
	prev := r.s.movies[id]
	m.ID = id
	m.FranchiseID = prev.FranchiseID
	m.Characters = nil
	r.s.movies[id] = m
	return nil
}

func (r memMovieRepo) Delete(ctx context.Context, id int64) error {
	r.s.writes++
	delete(r.s.movies, id)
	return nil
}

func (r memMovieRepo) FindByFranchise(ctx context.Context, franchiseID int64) ([]domain.Movie, error) {
	result := []domain.Movie{}
	for _, id := range r.s.franchiseMovies(franchiseID) {
		result = append(result, r.s.movie(id))
	}
	return result, nil
}

type memFranchiseRepo struct{ s *memStore }

func (r memFranchiseRepo) FindAll(ctx context.Context) ([]domain.Franchise, error) {
	result := []domain.Franchise{}
	for _, id := range sortedKeys(r.s.franchises) {
		result = append(result, r.s.franchise(id))
	}
	return result, nil
}

func (r memFranchiseRepo) FindByID(ctx context.Context, id int64) (domain.Franchise, error) {
	if _, ok := r.s.franchises[id]; !ok {
		return domain.Franchise{}, domain.NotFoundError{Kind: domain.KindFranchise, ID: id}
	}
	return r.s.franchise(id), nil
}

func (r memFranchiseRepo) Insert(ctx context.Context, f domain.Franchise) (domain.Franchise, error) {
	r.s.writes++
	f.ID = r.s.assign(domain.KindFranchise)
	f.Movies = nil
	r.s.franchises[f.ID] = f
	return r.s.franchise(f.ID), nil
}

func (r memFranchiseRepo) UpdateScalars(ctx context.Context, id int64, f domain.Franchise) error {
	r.s.writes++
	f.ID = id
	f.Movies = nil
	r.s.franchises[id] = f
	return nil
}

func (r memFranchiseRepo) Delete(ctx context.Context, id int64) error {
	r.s.writes++
	delete(r.s.franchises, id)
	return nil
}

type recordingPublisher struct {
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.events = append(p.events, event)
	return p.err
}

// fixture mirrors the seed data: characters 1..3, franchises 1..2, movies 1..3
// and edges (1,1), (2,1), (2,2), (3,3).
type fixture struct {
	store      *memStore
	events     *recordingPublisher
	catalog    *Catalog
	characters *CharacterUsecase
	movies     *MovieUsecase
	franchises *FranchiseUsecase
}

func newFixture() *fixture {
	s := newMemStore()
	ctx := context.Background()

	chars := memCharacterRepo{s}
	movies := memMovieRepo{s}
	franchises := memFranchiseRepo{s}

	alias := "Captain Hero"
	chars.Insert(ctx, domain.Character{FullName: "John Smith", Alias: &alias, Gender: "Male"})
	chars.Insert(ctx, domain.Character{FullName: "Jane Doe", Gender: "Female"})
	chars.Insert(ctx, domain.Character{FullName: "David Johnson", Gender: "Male"})
	franchises.Insert(ctx, domain.Franchise{Name: "Marvel Cinematic Universe"})
	franchises.Insert(ctx, domain.Franchise{Name: "Wonder Woman"})
	f1, f2 := int64(1), int64(2)
	movies.Insert(ctx, domain.Movie{Title: "Avengers: Endgame", FranchiseID: &f1})
	movies.Insert(ctx, domain.Movie{Title: "Wonder Woman 1984", FranchiseID: &f2})
	movies.Insert(ctx, domain.Movie{Title: "Spider-Man: No Way Home", FranchiseID: &f1})
	for _, edge := range [][2]int64{{1, 1}, {2, 1}, {2, 2}, {3, 3}} {
		s.edges[edge] = struct{}{}
	}
	s.writes = 0

	events := &recordingPublisher{}
	catalog := NewCatalog(s, s, s, events)
	return &fixture{
		store:      s,
		events:     events,
		catalog:    catalog,
		characters: NewCharacterUsecase(catalog, chars, 0),
		movies:     NewMovieUsecase(catalog, movies, chars),
		franchises: NewFranchiseUsecase(catalog, franchises, movies, chars),
	}
}
