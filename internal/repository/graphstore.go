package repository

import (
	"context"

	"github.com/bookgraph/bookgraph/internal/model"
)

// GraphStore provides CRUD and traversal over Book and User nodes and the
// HAS_READ edges between them. Lookups by domain id are first-match: the
// store creates no uniqueness constraint, so several nodes may share an id.
type GraphStore interface {
	// Books returns every Book node.
	Books(ctx context.Context) ([]model.Book, error)
	// Book returns the book with the given domain id, or errs.ErrNotFound.
	Book(ctx context.Context, id string) (*model.Book, error)
	// AddBook creates a Book node and returns the store's internal node id.
	AddBook(ctx context.Context, b model.Book) (string, error)
	// EditBook overwrites all fields of the matched book. Returns
	// errs.ErrNotFound when no node matched.
	EditBook(ctx context.Context, id string, b model.Book) error
	// DeleteBook removes the book and all incident edges. Returns
	// errs.ErrNotFound when no node matched.
	DeleteBook(ctx context.Context, id string) error

	// Users returns every User node.
	Users(ctx context.Context) ([]model.User, error)
	// User returns the user with the given domain id, or errs.ErrNotFound.
	User(ctx context.Context, id int64) (*model.User, error)
	// AddUser creates a User node and returns the store's internal node id.
	AddUser(ctx context.Context, u model.User) (string, error)
	// EditUser overwrites all fields of the matched user. Returns
	// errs.ErrNotFound when no node matched.
	EditUser(ctx context.Context, id int64, u model.User) error
	// DeleteUser removes the user and all incident edges. Returns
	// errs.ErrNotFound when no node matched.
	DeleteUser(ctx context.Context, id int64) error

	// UserBooks returns the books connected to the user by HAS_READ edges.
	UserBooks(ctx context.Context, userID int64) ([]model.Book, error)
	// AddRead creates a HAS_READ edge idempotently. Returns
	// errs.ErrNotFound when either endpoint is missing.
	AddRead(ctx context.Context, userID int64, bookID string) error
	// RemoveRead deletes the HAS_READ edge between the pair; no-op when
	// none exists.
	RemoveRead(ctx context.Context, userID int64, bookID string) error

	// Recommend returns up to 5 books ranked by how many distinct
	// co-readers of the user's books have read them.
	Recommend(ctx context.Context, userID int64) ([]model.Book, error)
}
