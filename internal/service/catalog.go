package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookgraph/bookgraph/internal/model"
	"github.com/bookgraph/bookgraph/internal/repository"
)

// CatalogService is the request-shaped surface over the graph store. Read
// operations fail open: on a store error they log and return an empty or
// absent result, so a transient graph failure never takes a read endpoint
// down. Mutations propagate their error and the boundary renders a boolean.
type CatalogService interface {
	Books(ctx context.Context) []model.Book
	Book(ctx context.Context, id string) *model.Book
	// AddBook returns the graph store's internal node id, or "" on failure.
	AddBook(ctx context.Context, b model.Book) string
	EditBook(ctx context.Context, id string, b model.Book) error
	DeleteBook(ctx context.Context, id string) error

	Users(ctx context.Context) []model.User
	User(ctx context.Context, id int64) *model.User
	AddUser(ctx context.Context, u model.User) string
	EditUser(ctx context.Context, id int64, u model.User) error
	DeleteUser(ctx context.Context, id int64) error

	UserBooks(ctx context.Context, userID int64) []model.Book
	AddRead(ctx context.Context, userID int64, bookID string) error
	RemoveRead(ctx context.Context, userID int64, bookID string) error

	// Recommendations returns up to 5 ranked suggestions, empty on failure.
	Recommendations(ctx context.Context, userID int64) []model.Book
}

type CatalogServiceImpl struct {
	store repository.GraphStore
	log   *zap.Logger
}

// NewCatalogService constructs CatalogService over a graph store.
func NewCatalogService(store repository.GraphStore, log *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{store: store, log: log}
}

// Books lists the whole catalog, empty on store failure.
func (s *CatalogServiceImpl) Books(ctx context.Context) []model.Book {
	s.log.Info("list books")
	books, err := s.store.Books(ctx)
	if err != nil {
		s.log.Error("list books", zap.Error(err))
		return []model.Book{}
	}
	return books
}

// Book returns the book with the given id, nil when absent or on failure.
func (s *CatalogServiceImpl) Book(ctx context.Context, id string) *model.Book {
	s.log.Info("get book", zap.String("id", id))
	b, err := s.store.Book(ctx, id)
	if err != nil {
		s.log.Error("get book", zap.String("id", id), zap.Error(err))
		return nil
	}
	return b
}

// AddBook creates the book node, "" on failure.
func (s *CatalogServiceImpl) AddBook(ctx context.Context, b model.Book) string {
	s.log.Info("add book", zap.String("id", b.ID))
	nodeID, err := s.store.AddBook(ctx, b)
	if err != nil {
		s.log.Error("add book", zap.String("id", b.ID), zap.Error(err))
		return ""
	}
	return nodeID
}

// EditBook overwrites all fields of the matched book.
func (s *CatalogServiceImpl) EditBook(ctx context.Context, id string, b model.Book) error {
	s.log.Info("edit book", zap.String("id", id))
	return s.store.EditBook(ctx, id, b)
}

// DeleteBook removes the book and its edges.
func (s *CatalogServiceImpl) DeleteBook(ctx context.Context, id string) error {
	s.log.Info("delete book", zap.String("id", id))
	return s.store.DeleteBook(ctx, id)
}

// Users lists all readers, empty on store failure.
func (s *CatalogServiceImpl) Users(ctx context.Context) []model.User {
	s.log.Info("list users")
	users, err := s.store.Users(ctx)
	if err != nil {
		s.log.Error("list users", zap.Error(err))
		return []model.User{}
	}
	return users
}

// User returns the reader with the given id, nil when absent or on failure.
func (s *CatalogServiceImpl) User(ctx context.Context, id int64) *model.User {
	s.log.Info("get user", zap.Int64("id", id))
	u, err := s.store.User(ctx, id)
	if err != nil {
		s.log.Error("get user", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	return u
}

// AddUser creates the user node, "" on failure.
func (s *CatalogServiceImpl) AddUser(ctx context.Context, u model.User) string {
	s.log.Info("add user", zap.Int64("id", u.ID))
	nodeID, err := s.store.AddUser(ctx, u)
	if err != nil {
		s.log.Error("add user", zap.Int64("id", u.ID), zap.Error(err))
		return ""
	}
	return nodeID
}

// EditUser overwrites all fields of the matched user.
func (s *CatalogServiceImpl) EditUser(ctx context.Context, id int64, u model.User) error {
	s.log.Info("edit user", zap.Int64("id", id))
	return s.store.EditUser(ctx, id, u)
}

// DeleteUser removes the user and its edges.
func (s *CatalogServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	s.log.Info("delete user", zap.Int64("id", id))
	return s.store.DeleteUser(ctx, id)
}

// UserBooks lists the books the user has read, empty on store failure.
func (s *CatalogServiceImpl) UserBooks(ctx context.Context, userID int64) []model.Book {
	s.log.Info("list user books", zap.Int64("user", userID))
	books, err := s.store.UserBooks(ctx, userID)
	if err != nil {
		s.log.Error("list user books", zap.Int64("user", userID), zap.Error(err))
		return []model.Book{}
	}
	return books
}

// AddRead marks the book as read by the user, idempotently.
func (s *CatalogServiceImpl) AddRead(ctx context.Context, userID int64, bookID string) error {
	s.log.Info("add read", zap.Int64("user", userID), zap.String("book", bookID))
	return s.store.AddRead(ctx, userID, bookID)
}

// RemoveRead unmarks the book for the user.
func (s *CatalogServiceImpl) RemoveRead(ctx context.Context, userID int64, bookID string) error {
	s.log.Info("remove read", zap.Int64("user", userID), zap.String("book", bookID))
	return s.store.RemoveRead(ctx, userID, bookID)
}

// Recommendations returns ranked suggestions, empty on store failure.
func (s *CatalogServiceImpl) Recommendations(ctx context.Context, userID int64) []model.Book {
	s.log.Info("recommend", zap.Int64("user", userID))
	books, err := s.store.Recommend(ctx, userID)
	if err != nil {
		s.log.Error("recommend", zap.Int64("user", userID), zap.Error(err))
		return []model.Book{}
	}
	if books == nil {
		books = []model.Book{}
	}
	return books
}
