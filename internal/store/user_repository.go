package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/moviegoers/moviegoers-api/internal/models"
)

const userColumns = `id, email, wallet_address, user_ip, is_email_verified,
	verification_token, verification_expires, correct_answers, solved_movies,
	last_participation, created_at, updated_at`

// UserRepository handles database operations related to users
type UserRepository struct {
	db *Database
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetByWalletAddress retrieves a user by wallet address
func (r *UserRepository) GetByWalletAddress(ctx context.Context, address string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE wallet_address = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, address)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// Upsert creates the user record for a wallet address or updates the existing
// one. Score fields are never touched here. The verified flag follows the
// stored email: changing the email resets it, so the flag never vouches for
// an address that was not verified. An outstanding verification token is kept
// unless the submitted record replaces it.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now()

	query := `INSERT INTO users (id, email, wallet_address, user_ip, is_email_verified,
				verification_token, verification_expires, last_participation, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			  ON CONFLICT (wallet_address) DO UPDATE SET
				email = EXCLUDED.email,
				user_ip = EXCLUDED.user_ip,
				is_email_verified = CASE WHEN users.email = EXCLUDED.email
										 THEN users.is_email_verified OR EXCLUDED.is_email_verified
										 ELSE EXCLUDED.is_email_verified END,
				verification_token = COALESCE(EXCLUDED.verification_token, users.verification_token),
				verification_expires = COALESCE(EXCLUDED.verification_expires, users.verification_expires),
				last_participation = EXCLUDED.last_participation,
				updated_at = EXCLUDED.updated_at
			  RETURNING ` + userColumns

	stored := &models.User{}
	err := r.db.GetDB().GetContext(ctx, stored, query,
		u.ID, u.Email, u.WalletAddress, u.UserIP, u.IsEmailVerified,
		u.VerificationToken, u.VerificationExpires, u.LastParticipation, now)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// ConsumeVerificationToken atomically verifies the user holding an unexpired
// token and clears the token so it cannot be reused. Returns nil when the
// token is unknown or expired.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	user := &models.User{}
	query := `UPDATE users
			  SET is_email_verified = TRUE,
				  verification_token = NULL,
				  verification_expires = NULL,
				  updated_at = $2
			  WHERE verification_token = $1 AND verification_expires > $2
			  RETURNING ` + userColumns

	err := r.db.GetDB().GetContext(ctx, user, query, token, now)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// IncrementScore credits a movie title to a wallet exactly once. The guard on
// solved_movies makes the read-modify-write a single atomic statement, so two
// near-simultaneous correct submissions cannot double-count. The second
// return value reports whether the score actually changed.
func (r *UserRepository) IncrementScore(ctx context.Context, address, title string) (*models.User, bool, error) {
	user := &models.User{}
	query := `UPDATE users
			  SET correct_answers = correct_answers + 1,
				  solved_movies = array_append(solved_movies, $2),
				  updated_at = NOW()
			  WHERE wallet_address = $1 AND NOT ($2 = ANY(solved_movies))
			  RETURNING ` + userColumns

	err := r.db.GetDB().GetContext(ctx, user, query, address, title)
	if err == nil {
		return user, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	// Either the movie was already credited or the user does not exist.
	user, err = r.GetByWalletAddress(ctx, address)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}
