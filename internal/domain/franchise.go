package domain

// Franchise groups movies. Membership is stored on the movie side.
type Franchise struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Movies      []int64 `json:"movies"`
}
