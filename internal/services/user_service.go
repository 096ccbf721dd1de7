package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/moviegoers/moviegoers-api/internal/models"
)

// UserStore is the storage contract for identity records
type UserStore interface {
	GetByWalletAddress(ctx context.Context, address string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) (*models.User, error)
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	IncrementScore(ctx context.Context, address, title string) (*models.User, bool, error)
}

// Mailer sends verification mail and validates addresses
type Mailer interface {
	IsEmailValid(email string) bool
	SendVerificationEmail(to, link string) error
}

// UserService handles submissions, the one-per-day participation gate, email
// verification and score credits
type UserService struct {
	store   UserStore
	mailer  Mailer
	wallets *WalletService
	game    *GameService

	adminCode          string
	baseURL            string
	verificationExpiry time.Duration
}

// NewUserService creates a new UserService
func NewUserService(store UserStore, mailer Mailer, wallets *WalletService, game *GameService,
	adminCode, baseURL string, verificationExpiry time.Duration) *UserService {
	return &UserService{
		store:              store,
		mailer:             mailer,
		wallets:            wallets,
		game:               game,
		adminCode:          adminCode,
		baseURL:            baseURL,
		verificationExpiry: verificationExpiry,
	}
}

// Bypass reports whether the admin code or test mode disables the
// participation gate
func (s *UserService) Bypass(adminCode string, testMode bool) bool {
	if testMode {
		return true
	}
	return s.adminCode != "" && adminCode == s.adminCode
}

// CheckParticipation reports whether the wallet already submitted today
func (s *UserService) CheckParticipation(ctx context.Context, walletAddress, adminCode string, testMode bool, now time.Time) (*models.ParticipationResponse, error) {
	if s.Bypass(adminCode, testMode) {
		return &models.ParticipationResponse{HasParticipated: false}, nil
	}

	if walletAddress == "" {
		return &models.ParticipationResponse{HasParticipated: false}, nil
	}

	user, err := s.store.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	if user == nil || !s.participatedToday(user, now) {
		return &models.ParticipationResponse{HasParticipated: false}, nil
	}

	return &models.ParticipationResponse{
		HasParticipated: true,
		UserInfo: &models.UserInfo{
			Email:          user.Email,
			WalletAddress:  user.WalletAddress,
			CorrectAnswers: user.CorrectAnswers,
		},
	}, nil
}

func (s *UserService) participatedToday(user *models.User, now time.Time) bool {
	return user.LastParticipation != nil && s.game.SameDay(*user.LastParticipation, now)
}

// Submit registers or updates the wallet's record for today's draw. The
// upsert is keyed on the wallet address so re-submissions never create
// duplicates. Unless bypassed or the stored email is already verified, a
// verification link is mailed; the pending record is persisted before sending
// so a mail failure leaves it eligible for re-issuance. Submitting a new
// email restarts verification for that address.
func (s *UserService) Submit(ctx context.Context, req models.SubmitUserRequest, userIP, adminCode string, testMode bool, now time.Time) (*models.SubmitUserResponse, error) {
	if !s.wallets.IsValidAddress(req.WalletAddress) {
		return nil, ErrInvalidAddress
	}
	if !s.mailer.IsEmailValid(req.Email) {
		return nil, ErrInvalidEmail
	}

	byEmail, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil && byEmail.WalletAddress != req.WalletAddress {
		return nil, ErrDuplicateEmail
	}

	bypass := s.Bypass(adminCode, testMode)

	existing, err := s.store.GetByWalletAddress(ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}
	// A record still waiting on verification of its stored email may
	// re-submit the same day; that re-issues the verification link after a
	// failed send. The store resets the verified flag whenever the email
	// changes, so a submission that switched addresses counts as pending too.
	pending := existing != nil && !existing.IsEmailVerified && existing.VerificationToken != nil
	if !bypass && !pending && existing != nil && s.participatedToday(existing, now) {
		return nil, ErrAlreadyParticipated
	}

	user := &models.User{
		Email:             req.Email,
		WalletAddress:     req.WalletAddress,
		UserIP:            userIP,
		LastParticipation: &now,
	}

	if bypass {
		user.IsEmailVerified = true
		if _, err := s.store.Upsert(ctx, user); err != nil {
			return nil, err
		}
		return &models.SubmitUserResponse{
			Message: "Information submitted successfully (Admin/Test mode)",
		}, nil
	}

	// A wallet whose stored email is already verified re-submits without a
	// new verification round trip.
	if existing != nil && existing.IsEmailVerified && existing.Email == req.Email {
		user.IsEmailVerified = true
		if _, err := s.store.Upsert(ctx, user); err != nil {
			return nil, err
		}
		return &models.SubmitUserResponse{
			Message: "Information submitted successfully! Thank you for participating.",
		}, nil
	}

	token, err := generateVerificationToken()
	if err != nil {
		return nil, err
	}
	expires := now.Add(s.verificationExpiry)
	user.VerificationToken = &token
	user.VerificationExpires = &expires

	if _, err := s.store.Upsert(ctx, user); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/verify-email/%s", s.baseURL, token)
	if err := s.mailer.SendVerificationEmail(req.Email, link); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return &models.SubmitUserResponse{
		Message:              "Please check your email to verify your account. Check your spam folder if you don't see it.",
		RequiresVerification: true,
	}, nil
}

// VerifyEmail consumes a verification token. The token is single use: the
// store clears it in the same statement that flips the verified flag.
func (s *UserService) VerifyEmail(ctx context.Context, token string, now time.Time) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.store.ConsumeVerificationToken(ctx, token, now)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	return nil
}

// IncrementScore credits a correct guess once per movie. Crediting the same
// title twice is a no-op returning the current state.
func (s *UserService) IncrementScore(ctx context.Context, walletAddress, movieTitle string) (*models.ScoreResponse, error) {
	user, applied, err := s.store.IncrementScore(ctx, walletAddress, movieTitle)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	message := "Movie already solved"
	if applied {
		message = "Score updated successfully"
	}

	return &models.ScoreResponse{
		Message:      message,
		NewScore:     user.CorrectAnswers,
		SolvedMovies: user.SolvedMovies,
	}, nil
}

// Score returns the wallet's current score state
func (s *UserService) Score(ctx context.Context, walletAddress string) (*models.User, error) {
	user, err := s.store.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CheckMovieSolved reports whether the wallet already solved today's movie
func (s *UserService) CheckMovieSolved(ctx context.Context, walletAddress string, now time.Time) (*models.MovieSolvedResponse, error) {
	daily, err := s.game.DailyMovie(ctx, now)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetByWalletAddress(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &models.MovieSolvedResponse{IsSolved: false}, nil
	}

	for _, title := range user.SolvedMovies {
		if title == daily.Title {
			return &models.MovieSolvedResponse{IsSolved: true, MovieTitle: daily.Title}, nil
		}
	}

	return &models.MovieSolvedResponse{IsSolved: false}, nil
}

func generateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
