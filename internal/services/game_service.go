package services

import (
	"context"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
)

// MovieCatalog is the read side of the movie store
type MovieCatalog interface {
	Count(ctx context.Context) (int, error)
	ByIndex(ctx context.Context, index int) (*models.Movie, error)
}

// GameService picks the daily movie. Selection is deterministic: the day of
// year in the reference zone, modulo the catalog size, indexes the catalog in
// its stable seed order.
type GameService struct {
	catalog MovieCatalog
	zone    *time.Location
}

// NewGameService creates a new GameService
func NewGameService(catalog MovieCatalog, zone *time.Location) *GameService {
	return &GameService{
		catalog: catalog,
		zone:    zone,
	}
}

// DailyMovie returns the movie for the calendar day containing now, together
// with rotation timing
func (s *GameService) DailyMovie(ctx context.Context, now time.Time) (*models.DailyMovieResponse, error) {
	count, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyCatalog
	}

	local := now.In(s.zone)
	index := local.YearDay() % count

	movie, err := s.catalog.ByIndex(ctx, index)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		// Catalog shrank between the count and the lookup.
		return nil, ErrEmptyCatalog
	}

	day := s.StartOfDay(now)
	return &models.DailyMovieResponse{
		Title:      movie.Title,
		Screenshot: movie.Screenshot,
		TimeInfo: models.TimeInfo{
			Date:         day.Format("2006-01-02"),
			NextRotation: day.AddDate(0, 0, 1),
			Timezone:     s.zone.String(),
		},
	}, nil
}

// StartOfDay truncates now to midnight in the reference zone
func (s *GameService) StartOfDay(now time.Time) time.Time {
	local := now.In(s.zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.zone)
}

// NextRotation returns the next daily boundary after now
func (s *GameService) NextRotation(now time.Time) time.Time {
	return s.StartOfDay(now).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar day in the
// reference zone
func (s *GameService) SameDay(a, b time.Time) bool {
	la, lb := a.In(s.zone), b.In(s.zone)
	ya, ma, da := la.Date()
	yb, mb, db := lb.Date()
	return ya == yb && ma == mb && da == db
}
