// Package services contains server-side business logic. UserService handles
// signup, login and token verification; NoteService owns the note rules.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/common"
	"github.com/dmitrijs2005/voicenotes/internal/server/auth"
	"github.com/dmitrijs2005/voicenotes/internal/server/config"
	"github.com/dmitrijs2005/voicenotes/internal/server/models"
	"github.com/dmitrijs2005/voicenotes/internal/server/repositories/repomanager"
)

const (
	msgMissingCredentials = "Please provide email and password"
	msgUserExists         = "User already exists"
	msgUserDoesNotExist   = "User does not exist"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// NormalizeEmail trims and lowercases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user. The returned user carries no password hash.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.WithMessage(common.ErrorValidation, msgMissingCredentials)
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.WithMessage(common.ErrorAlreadyExists, msgUserExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.WithMessage(common.ErrorAlreadyExists, msgUserExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	user.PasswordHash = ""
	user.NoteIDs = []string{}
	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", common.WithMessage(common.ErrorValidation, msgMissingCredentials)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.WithMessage(common.ErrorInvalidCredentials, msgUserDoesNotExist)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", common.WithMessage(common.ErrorInvalidCredentials, msgInvalidCredentials)
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a session token to the user id it was issued for.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
