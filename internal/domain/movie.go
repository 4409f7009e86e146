package domain

// Movie belongs to at most one franchise and features any number of characters.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	ReleaseYear int     `json:"releaseYear"`
	Director    string  `json:"director"`
	PictureURL  string  `json:"pictureUrl"`
	TrailerURL  string  `json:"trailerUrl"`
	FranchiseID *int64  `json:"franchiseId"`
	Characters  []int64 `json:"characters"`
}
