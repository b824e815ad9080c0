// Package service contains application services composing the credential and
// graph stores for the HTTP boundary.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgcrypto "github.com/bookgraph/bookgraph/internal/crypto"
	"github.com/bookgraph/bookgraph/internal/errs"
	"github.com/bookgraph/bookgraph/internal/model"
	"github.com/bookgraph/bookgraph/internal/repository"
)

// AuthService defines account registration and verification operations.
type AuthService interface {
	// Register creates an account with secure password hashing and returns
	// the stored record with hash and salt scrubbed.
	Register(ctx context.Context, username, password string) (*model.Credential, error)
	// Login verifies the password and returns the account id. An unknown
	// username and a wrong password are indistinguishable: both yield
	// ok=false with a nil error.
	Login(ctx context.Context, username, password string) (id int64, ok bool, err error)
	// Accounts lists all accounts as public projections.
	Accounts(ctx context.Context) ([]model.AccountInfo, error)
	// Deregister removes an account by id.
	Deregister(ctx context.Context, id int64) error
}

type AuthServiceImpl struct {
	creds repository.CredentialRepository
	log   *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(creds repository.CredentialRepository, log *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{creds: creds, log: log}
}

// Register hashes the password with a fresh per-user salt, inserts the row
// and re-reads it by username. Insert and re-read are separate round trips
// with no transaction between them.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*model.Credential, error) {
	s.log.Info("register", zap.String("username", username))
	if username == "" || password == "" {
		return nil, errors.New("empty username/password")
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return nil, err
	}
	hash := pkgcrypto.Hash([]byte(password), salt)

	if err := s.creds.Create(ctx, username, hash, salt); err != nil {
		return nil, fmt.Errorf("register %q: %w", username, err)
	}
	c, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register %q: read back: %w", username, err)
	}
	c.PasswordHash = nil
	c.Salt = nil
	return c, nil
}

// Login checks the password against the stored hash. Only storage failures
// produce an error; bad credentials are a uniform ok=false so callers cannot
// enumerate usernames.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (int64, bool, error) {
	s.log.Info("login", zap.String("username", username))
	c, err := s.creds.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("login %q: %w", username, err)
	}
	if !pkgcrypto.Verify([]byte(password), c.Salt, c.PasswordHash) {
		return 0, false, nil
	}
	return c.ID, true, nil
}

// Accounts projects credential rows through AccountInfo, which cannot carry
// hash or salt.
func (s *AuthServiceImpl) Accounts(ctx context.Context) ([]model.AccountInfo, error) {
	s.log.Info("list accounts")
	creds, err := s.creds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]model.AccountInfo, 0, len(creds))
	for _, c := range creds {
		out = append(out, model.AccountInfo{ID: c.ID, Username: c.Username})
	}
	return out, nil
}

// Deregister removes the account row by primary key.
func (s *AuthServiceImpl) Deregister(ctx context.Context, id int64) error {
	s.log.Info("deregister", zap.Int64("id", id))
	return s.creds.Delete(ctx, id)
}
