package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/moviegoers/moviegoers-api/internal/models"
)

// MovieRepository handles database operations related to the movie catalog
type MovieRepository struct {
	db *Database
}

// NewMovieRepository creates a new MovieRepository
func NewMovieRepository(db *Database) *MovieRepository {
	return &MovieRepository{
		db: db,
	}
}

// Count returns the number of movies in the catalog
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM movies`

	err := r.db.GetDB().GetContext(ctx, &count, query)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ByIndex retrieves the movie at the given ordinal position. Ordering is by
// seed position so the same index always yields the same movie.
func (r *MovieRepository) ByIndex(ctx context.Context, index int) (*models.Movie, error) {
	movie := &models.Movie{}
	query := `SELECT id, title, screenshot, position, created_at
			  FROM movies
			  ORDER BY position, id
			  LIMIT 1 OFFSET $1`

	err := r.db.GetDB().GetContext(ctx, movie, query, index)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return movie, nil
}

// Create inserts a movie at the end of the catalog ordering
func (r *MovieRepository) Create(ctx context.Context, title, screenshot string) (*models.Movie, error) {
	movie := &models.Movie{
		ID:         uuid.New().String(),
		Title:      title,
		Screenshot: screenshot,
		CreatedAt:  time.Now(),
	}

	query := `INSERT INTO movies (id, title, screenshot, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING position`
	err := r.db.GetDB().GetContext(ctx, &movie.Position, query,
		movie.ID, movie.Title, movie.Screenshot, movie.CreatedAt)
	if err != nil {
		return nil, err
	}

	return movie, nil
}
