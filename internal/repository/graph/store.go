package graph

import (
	"context"
	"fmt"

	"github.com/bookgraph/bookgraph/internal/errs"
	"github.com/bookgraph/bookgraph/internal/model"
)

// Store implements repository.GraphStore over a Client.
//
// No uniqueness constraint is created for domain ids: several nodes may
// share one id, and point lookups return the first match. Mutations report
// errs.ErrNotFound when their MATCH binds nothing instead of silently
// succeeding.
type Store struct{ c Client }

// NewStore constructs a graph store.
func NewStore(c Client) *Store { return &Store{c: c} }

const bookFields = `b.id AS id, b.title AS title, b.author AS author, b.genre AS genre, b.cover AS cover`

func bookFromRecord(rec Record) model.Book {
	return model.Book{
		ID:     rec.String("id"),
		Title:  rec.String("title"),
		Author: rec.String("author"),
		Genre:  rec.String("genre"),
		Cover:  rec.String("cover"),
	}
}

func userFromRecord(rec Record) model.User {
	return model.User{
		ID:   rec.Int("id"),
		Name: rec.String("name"),
	}
}

// Books returns every Book node.
func (s *Store) Books(ctx context.Context) ([]model.Book, error) {
	const q = `MATCH (b:Book) RETURN ` + bookFields
	records, err := s.c.ExecuteRead(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}
	books := make([]model.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, bookFromRecord(rec))
	}
	return books, nil
}

// Book returns the first book matching the domain id.
func (s *Store) Book(ctx context.Context, id string) (*model.Book, error) {
	const q = `MATCH (b:Book {id: $id}) RETURN ` + bookFields
	records, err := s.c.ExecuteRead(ctx, q, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("fetch book %q: %w", id, err)
	}
	if len(records) == 0 {
		return nil, errs.ErrNotFound
	}
	b := bookFromRecord(records[0])
	return &b, nil
}

// AddBook creates a Book node and returns the store's internal node id.
func (s *Store) AddBook(ctx context.Context, b model.Book) (string, error) {
	const q = `
CREATE (b:Book {id: $id, title: $title, author: $author, genre: $genre, cover: $cover})
RETURN elementId(b) AS nodeId`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{
		"id":     b.ID,
		"title":  b.Title,
		"author": b.Author,
		"genre":  b.Genre,
		"cover":  b.Cover,
	})
	if err != nil {
		return "", fmt.Errorf("add book: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("add book: no node returned")
	}
	return records[0].String("nodeId"), nil
}

// EditBook overwrites all fields of the matched book.
func (s *Store) EditBook(ctx context.Context, id string, b model.Book) error {
	const q = `
MATCH (b:Book {id: $id})
SET b.title = $title, b.author = $author, b.genre = $genre, b.cover = $cover
RETURN count(b) AS n`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{
		"id":     id,
		"title":  b.Title,
		"author": b.Author,
		"genre":  b.Genre,
		"cover":  b.Cover,
	})
	if err != nil {
		return fmt.Errorf("update book %q: %w", id, err)
	}
	return matchedAny(records)
}

// DeleteBook removes the book and all incident edges.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	const q = `MATCH (b:Book {id: $id}) DETACH DELETE b RETURN count(b) AS n`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete book %q: %w", id, err)
	}
	return matchedAny(records)
}

// Users returns every User node.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	const q = `MATCH (u:User) RETURN u.id AS id, u.name AS name`
	records, err := s.c.ExecuteRead(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	users := make([]model.User, 0, len(records))
	for _, rec := range records {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// User returns the first user matching the domain id.
func (s *Store) User(ctx context.Context, id int64) (*model.User, error) {
	const q = `MATCH (u:User {id: $id}) RETURN u.id AS id, u.name AS name`
	records, err := s.c.ExecuteRead(ctx, q, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("fetch user %d: %w", id, err)
	}
	if len(records) == 0 {
		return nil, errs.ErrNotFound
	}
	u := userFromRecord(records[0])
	return &u, nil
}

// AddUser creates a User node and returns the store's internal node id.
func (s *Store) AddUser(ctx context.Context, u model.User) (string, error) {
	const q = `CREATE (u:User {id: $id, name: $name}) RETURN elementId(u) AS nodeId`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{"id": u.ID, "name": u.Name})
	if err != nil {
		return "", fmt.Errorf("add user: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("add user: no node returned")
	}
	return records[0].String("nodeId"), nil
}

// EditUser overwrites all fields of the matched user.
func (s *Store) EditUser(ctx context.Context, id int64, u model.User) error {
	const q = `MATCH (u:User {id: $id}) SET u.name = $name RETURN count(u) AS n`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{"id": id, "name": u.Name})
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return matchedAny(records)
}

// DeleteUser removes the user and all incident edges.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	const q = `MATCH (u:User {id: $id}) DETACH DELETE u RETURN count(u) AS n`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return matchedAny(records)
}

// UserBooks returns the books connected to the user by HAS_READ edges.
func (s *Store) UserBooks(ctx context.Context, userID int64) ([]model.Book, error) {
	const q = `MATCH (u:User {id: $id})-[:HAS_READ]->(b:Book) RETURN DISTINCT ` + bookFields
	records, err := s.c.ExecuteRead(ctx, q, map[string]any{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("fetch books for user %d: %w", userID, err)
	}
	books := make([]model.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, bookFromRecord(rec))
	}
	return books, nil
}

// AddRead creates a HAS_READ edge. MERGE makes it idempotent: re-adding an
// existing edge is a no-op. Both endpoints must exist.
func (s *Store) AddRead(ctx context.Context, userID int64, bookID string) error {
	const q = `
MATCH (u:User {id: $userId})
MATCH (b:Book {id: $bookId})
MERGE (u)-[r:HAS_READ]->(b)
RETURN count(r) AS n`
	records, err := s.c.ExecuteWrite(ctx, q, map[string]any{"userId": userID, "bookId": bookID})
	if err != nil {
		return fmt.Errorf("add book %q to user %d: %w", bookID, userID, err)
	}
	return matchedAny(records)
}

// RemoveRead deletes the HAS_READ edge between the pair. Removing an edge
// that does not exist is a no-op.
func (s *Store) RemoveRead(ctx context.Context, userID int64, bookID string) error {
	const q = `MATCH (u:User {id: $userId})-[r:HAS_READ]->(b:Book {id: $bookId}) DELETE r`
	if _, err := s.c.ExecuteWrite(ctx, q, map[string]any{"userId": userID, "bookId": bookID}); err != nil {
		return fmt.Errorf("remove book %q from user %d: %w", bookID, userID, err)
	}
	return nil
}

// matchedAny maps a RETURN count(x) AS n result to errs.ErrNotFound when
// the mutation's MATCH bound nothing.
func matchedAny(records []Record) error {
	if len(records) == 0 || records[0].Int("n") == 0 {
		return errs.ErrNotFound
	}
	return nil
}
