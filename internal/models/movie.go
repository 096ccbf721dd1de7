package models

import (
	"time"
)

// Movie is a catalog entry. The catalog is seeded out of band and never
// mutated by the application; Position fixes the daily-rotation ordering.
type Movie struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Screenshot string    `json:"screenshot" db:"screenshot"`
	Position   int       `json:"position" db:"position"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// TimeInfo describes the current rotation day and when the next one starts.
type TimeInfo struct {
	Date         string    `json:"date"`
	NextRotation time.Time `json:"nextRotation"`
	Timezone     string    `json:"timezone"`
}

// DailyMovieResponse is the payload served for today's movie.
type DailyMovieResponse struct {
	Title      string   `json:"title"`
	Screenshot string   `json:"screenshot"`
	TimeInfo   TimeInfo `json:"timeInfo"`
}

// MovieSolvedResponse reports whether an identity already solved today's movie.
type MovieSolvedResponse struct {
	IsSolved   bool   `json:"isSolved"`
	MovieTitle string `json:"movieTitle,omitempty"`
}
