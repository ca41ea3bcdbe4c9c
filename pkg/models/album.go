package models

import "time"

// Album groups tracks under a single artist.
type Album struct {
	ID                   string    `json:"ratingKey"`
	Title                string    `json:"title"`
	ArtistID             string    `json:"parentRatingKey"`
	OriginallyAvailableAt time.Time `json:"originallyAvailableAt,omitempty"`
	Year                 int       `json:"year"`
	Collections          []string  `json:"collections,omitempty"`
	Genres               []string  `json:"genres,omitempty"`
	UserRating           *float64  `json:"userRating,omitempty"`
}

// ReleaseYear prefers the explicit release date's year, falling back to
// the flat year field.
func (a Album) ReleaseYear() int {
	if !a.OriginallyAvailableAt.IsZero() {
		return a.OriginallyAvailableAt.Year()
	}
	return a.Year
}
