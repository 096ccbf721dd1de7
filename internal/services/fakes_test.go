package services

import (
	"context"
	"errors"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
)

// fakeCatalog is an in-memory MovieCatalog.
type fakeCatalog struct {
	movies []*models.Movie
	err    error
}

func (f *fakeCatalog) Count(ctx context.Context) (int, error) {
	return len(f.movies), f.err
}

func (f *fakeCatalog) ByIndex(ctx context.Context, index int) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if index < 0 || index >= len(f.movies) {
		return nil, nil
	}
	return f.movies[index], nil
}

// fakeAttemptStore implements the AttemptStore contract in memory.
type fakeAttemptStore struct {
	rows map[string]*models.Attempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{rows: make(map[string]*models.Attempt)}
}

func (f *fakeAttemptStore) Increment(ctx context.Context, identity string, now time.Time, window time.Duration, max int) (*models.Attempt, error) {
	cutoff := now.Add(-window)
	row, ok := f.rows[identity]
	if !ok || !row.WindowStart.After(cutoff) {
		row = &models.Attempt{Identity: identity, WindowStart: now, AttemptCount: 1}
		f.rows[identity] = row
	} else if row.AttemptCount < max {
		row.AttemptCount++
	} else {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeAttemptStore) Active(ctx context.Context, identity string, now time.Time, window time.Duration) (*models.Attempt, error) {
	row, ok := f.rows[identity]
	if !ok || !row.WindowStart.After(now.Add(-window)) {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeAttemptStore) Clear(ctx context.Context, identity string) error {
	delete(f.rows, identity)
	return nil
}

// fakeUserStore implements the UserStore contract in memory, keyed on wallet
// address like the real table.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetByWalletAddress(ctx context.Context, address string) (*models.User, error) {
	user, ok := f.users[address]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	existing, ok := f.users[u.WalletAddress]
	if !ok {
		stored := *u
		if stored.ID == "" {
			stored.ID = "user-" + u.WalletAddress
		}
		f.users[u.WalletAddress] = &stored
	} else {
		// Mirrors the repository upsert: the verified flag follows the stored
		// email, an outstanding token survives unless replaced.
		if existing.Email == u.Email {
			existing.IsEmailVerified = existing.IsEmailVerified || u.IsEmailVerified
		} else {
			existing.IsEmailVerified = u.IsEmailVerified
		}
		existing.Email = u.Email
		existing.UserIP = u.UserIP
		if u.VerificationToken != nil {
			existing.VerificationToken = u.VerificationToken
			existing.VerificationExpires = u.VerificationExpires
		}
		existing.LastParticipation = u.LastParticipation
	}
	copied := *f.users[u.WalletAddress]
	return &copied, nil
}

func (f *fakeUserStore) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	for _, user := range f.users {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			if user.VerificationExpires == nil || !user.VerificationExpires.After(now) {
				return nil, nil
			}
			user.IsEmailVerified = true
			user.VerificationToken = nil
			user.VerificationExpires = nil
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) IncrementScore(ctx context.Context, address, title string) (*models.User, bool, error) {
	user, ok := f.users[address]
	if !ok {
		return nil, false, nil
	}
	for _, solved := range user.SolvedMovies {
		if solved == title {
			copied := *user
			return &copied, false, nil
		}
	}
	user.SolvedMovies = append(user.SolvedMovies, title)
	user.CorrectAnswers++
	copied := *user
	return &copied, true, nil
}

// fakeMailer records sent mail and can be told to fail.
type fakeMailer struct {
	sent     []string
	lastLink string
	fail     bool
}

func (f *fakeMailer) IsEmailValid(email string) bool {
	return (&EmailService{}).IsEmailValid(email)
}

func (f *fakeMailer) SendVerificationEmail(to, link string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, to)
	f.lastLink = link
	return nil
}
