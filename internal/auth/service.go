// Package auth registers users and issues the identity tokens the rest of the application trusts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt ignores anything longer
)

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)

// Service authenticates users
type Service struct {
	users     *database.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewService creates a new auth service
func NewService(db *sqlx.DB, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:     database.NewUserRepository(db),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates an account and returns it with a fresh token
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if err := checkUsername(username); err != nil {
		return nil, "", err
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return nil, "", apperr.Validation("password must be between %d and %d characters", minPasswordLength, maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	log.Printf("Registered user %d (%s)", user.ID, user.Username)

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns a fresh token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", errInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}
	return s.GenerateToken(user.ID)
}

// Profile returns the account of userID
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GenerateToken signs an HS256 token for userID
func (s *Service) GenerateToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken returns the user id carried by a valid token
func (s *Service) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: invalid claims", apperr.ErrUnauthenticated)
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, fmt.Errorf("%w: invalid user_id in token", apperr.ErrUnauthenticated)
	}
	return int64(userIDFloat), nil
}

// TokenTTL is the lifetime of issued tokens
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

func checkUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return apperr.Validation("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' && r != '-' {
			return apperr.Validation("username may only contain letters, digits, '_', '.' and '-'")
		}
	}
	return nil
}
