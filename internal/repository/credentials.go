// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/bookgraph/bookgraph/internal/model"
)

// CredentialRepository provides access to account rows in the relational store.
type CredentialRepository interface {
	// Create inserts a new credential row. Returns errs.ErrAlreadyExists
	// when the username is taken.
	Create(ctx context.Context, username string, hash, salt []byte) error
	// GetByUsername loads a credential by username.
	GetByUsername(ctx context.Context, username string) (*model.Credential, error)
	// List returns all credential rows, hashes included. Callers must
	// project through model.AccountInfo before exposing the result.
	List(ctx context.Context) ([]model.Credential, error)
	// Delete removes a row by primary key. Returns errs.ErrNotFound when
	// no row matched.
	Delete(ctx context.Context, id int64) error
}
