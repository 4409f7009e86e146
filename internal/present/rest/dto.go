package rest

import (
	"github.com/go-playground/validator/v10"

	"github.com/totegamma/filmapi/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CharacterPostRequest struct {
	FullName   string  `json:"fullName" validate:"required,max=50"`
	Alias      *string `json:"alias" validate:"omitempty,max=50"`
	Gender     string  `json:"gender" validate:"max=50"`
	PictureURL string  `json:"pictureUrl" validate:"max=100"`
}

type CharacterPutRequest struct {
	ID int64 `json:"id" validate:"required"`
	CharacterPostRequest
}

func (r CharacterPostRequest) toDomain() domain.Character {
	return domain.Character{
		FullName:   r.FullName,
		Alias:      r.Alias,
		Gender:     r.Gender,
		PictureURL: r.PictureURL,
	}
}

type MovieFields struct {
	Title       string `json:"title" validate:"required,max=50"`
	Genre       string `json:"genre" validate:"max=50"`
	ReleaseYear int    `json:"releaseYear" validate:"gte=0"`
	Director    string `json:"director" validate:"max=50"`
	PictureURL  string `json:"pictureUrl" validate:"max=100"`
	TrailerURL  string `json:"trailerUrl" validate:"max=100"`
}

type MoviePostRequest struct {
	MovieFields
	FranchiseID *int64 `json:"franchiseId" validate:"required"`
}

// MoviePutRequest has no franchise; membership changes go through the
// franchise's movie set.
type MoviePutRequest struct {
	ID int64 `json:"id" validate:"required"`
	MovieFields
}

func (r MovieFields) toDomain() domain.Movie {
	return domain.Movie{
		Title:       r.Title,
		Genre:       r.Genre,
		ReleaseYear: r.ReleaseYear,
		Director:    r.Director,
		PictureURL:  r.PictureURL,
		TrailerURL:  r.TrailerURL,
	}
}

type FranchisePostRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=100"`
}

type FranchisePutRequest struct {
	ID int64 `json:"id" validate:"required"`
	FranchisePostRequest
}

func (r FranchisePostRequest) toDomain() domain.Franchise {
	return domain.Franchise{
		Name:        r.Name,
		Description: r.Description,
	}
}
