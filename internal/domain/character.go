package domain

// Character is a person appearing in one or more movies.
type Character struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"fullName"`
	Alias      *string `json:"alias,omitempty"`
	Gender     string  `json:"gender"`
	PictureURL string  `json:"pictureUrl"`
	Movies     []int64 `json:"movies"`
}
