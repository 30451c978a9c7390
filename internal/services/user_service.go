package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SKrishna-7/stratify/internal/models"
	"github.com/SKrishna-7/stratify/internal/repository"
	"github.com/SKrishna-7/stratify/pkg/logger"
	"github.com/SKrishna-7/stratify/pkg/middleware"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and the daily streak.
type UserService struct {
	repo      repository.UserRepository
	jwtSecret string
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", models.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", models.ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashed),
		Plan:           "free",
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	logger.Log.WithField("user_id", created.ID.Hex()).Info("User registered")
	return created, nil
}

// Login verifies credentials, advances the streak and mints a JWT.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, models.ErrUnauthorized
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", nil, models.ErrUnauthorized
	}

	if err := s.touchStreak(ctx, user); err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to advance streak on login")
	}

	claims := &middleware.Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %v", err)
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User logged in")
	return signed, user, nil
}

// GetUser fetches the account for the /me endpoint.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// touchStreak applies the calendar-day streak rule: consecutive days extend
// the streak by one, a gap resets it to one, same-day logins change nothing.
func (s *UserService) touchStreak(ctx context.Context, user *models.User) error {
	now := time.Now()
	today := dayOf(now)

	switch {
	case user.LastLogin.IsZero():
		user.Streak = 1
	default:
		diff := int(today.Sub(dayOf(user.LastLogin)).Hours() / 24)
		if diff == 0 {
			return nil
		}
		if diff == 1 {
			user.Streak++
		} else {
			user.Streak = 1
		}
	}

	user.LastLogin = now
	return s.repo.UpdateStreak(ctx, user.ID, user.Streak, now)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
