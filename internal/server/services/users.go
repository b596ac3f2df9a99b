// Package services contains server-side business logic. This file implements
// UserService: registration, login, and resolving bearer tokens to users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-prt/rating-app-backend/internal/common"
	"github.com/j-prt/rating-app-backend/internal/server/auth"
	"github.com/j-prt/rating-app-backend/internal/server/config"
	"github.com/j-prt/rating-app-backend/internal/server/models"
	"github.com/j-prt/rating-app-backend/internal/server/repositories/repomanager"
)

// UserService provides identity operations:
// - Register: create users (duplicate email/username rejected by the store)
// - Login: verify credentials and mint a bearer token
// - Authenticate: resolve a bearer token to a user (the access gate)
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	hasher                      *auth.Hasher
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		hasher:                      hasher,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The plaintext password is hashed on the
// hasher pool before it reaches the repository. Duplicate email/username
// surface as common.ErrEmailTaken / common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, email, username, password string, firstName, lastName *string) (*models.User, error) {

	hash, err := s.hasher.GenerateHash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) || errors.Is(err, common.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, returns a signed bearer
// token. Unknown email and wrong password both map to ErrorUnauthorized so
// the response cannot reveal which one was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authenticate resolves a bearer token to its user. Invalid, expired, and
// dangling tokens (valid signature, no matching user) all map to
// ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	email, err := auth.GetEmailFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// List returns all users in id order.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)

	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// GetByID returns a single user or common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}
