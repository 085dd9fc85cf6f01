// Package service provides authentication and task business logic,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atinyakov/TaskTracker/internal/common"
	"github.com/atinyakov/TaskTracker/internal/models"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// CreateUser atomically checks username uniqueness and inserts the user.
	// Returns common.ErrConflict if the username is taken.
	CreateUser(ctx context.Context, username string, passwordHash []byte) (string, error)

	// FindUserByUsername returns the user or common.ErrNotFound.
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher turns passwords into digests and checks them.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	Verify(password string, digest []byte) bool
}

// TokenIssuer issues bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service implements signup and signin.
type Service struct {
	// repo performs the data-layer operations.
	repo   AuthRepository
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyDigest is checked against on unknown usernames so both signin
	// failures cost one hash comparison.
	dummyOnce   sync.Once
	dummyDigest []byte
}

const dummyPassword = "dummy-Password-1"

// NewAuthService constructs a new Service using the provided collaborators.
func NewAuthService(repo AuthRepository, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// SignUp registers a new user and returns its id.
// Returns common.ErrConflict if the username already exists.
func (s *Service) SignUp(ctx context.Context, username, password string) (string, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	return s.repo.CreateUser(ctx, username, digest)
}

// SignIn checks the credentials and returns a fresh access token.
// An unknown username and a wrong password both yield common.ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyDigest
}
