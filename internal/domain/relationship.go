package domain

// Relationship names one association edge set, seen from its owner.
type Relationship struct {
	Name    string
	Owner   Kind
	Related Kind
	// Limit caps the size of an owner's set. Zero means unbounded.
	Limit int
}

// DefaultCharacterMovieLimit is the maximum number of movies a character may appear in.
const DefaultCharacterMovieLimit = 5

var (
	CharacterMovies = Relationship{
		Name:    "character_movies",
		Owner:   KindCharacter,
		Related: KindMovie,
		Limit:   DefaultCharacterMovieLimit,
	}
	MovieCharacters = Relationship{
		Name:    "movie_characters",
		Owner:   KindMovie,
		Related: KindCharacter,
	}
	FranchiseMovies = Relationship{
		Name:    "franchise_movies",
		Owner:   KindFranchise,
		Related: KindMovie,
	}
)

// WithLimit returns a copy of r capped at limit.
func (r Relationship) WithLimit(limit int) Relationship {
	r.Limit = limit
	return r
}

// Limited reports whether n ids exceed the relationship's cap.
func (r Relationship) Limited(n int) bool {
	return r.Limit > 0 && n > r.Limit
}
