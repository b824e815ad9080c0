package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/bookgraph/bookgraph/internal/errs"
	"github.com/bookgraph/bookgraph/internal/model"
	"github.com/bookgraph/bookgraph/internal/repository"
)

type edge struct {
	user int64
	book string
}

// fakeGraph is an in-memory GraphStore with merge semantics for edges,
// guarded by a mutex so concurrent facade calls exercise it safely.
type fakeGraph struct {
	mu    sync.Mutex
	books map[string]model.Book
	users map[int64]model.User
	edges map[edge]struct{}

	failAll   error
	recommend []model.Book
}

var _ repository.GraphStore = (*fakeGraph)(nil)

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		books: map[string]model.Book{},
		users: map[int64]model.User{},
		edges: map[edge]struct{}{},
	}
}

func (f *fakeGraph) Books(context.Context) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []model.Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeGraph) Book(_ context.Context, id string) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	b, ok := f.books[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &b, nil
}

func (f *fakeGraph) AddBook(_ context.Context, b model.Book) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return "", f.failAll
	}
	f.books[b.ID] = b
	return fmt.Sprintf("4:node:%d", len(f.books)), nil
}

func (f *fakeGraph) EditBook(_ context.Context, id string, b model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.books[id]; !ok {
		return errs.ErrNotFound
	}
	b.ID = id
	f.books[id] = b
	return nil
}

func (f *fakeGraph) DeleteBook(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.books, id)
	for e := range f.edges {
		if e.book == id {
			delete(f.edges, e)
		}
	}
	return nil
}

func (f *fakeGraph) Users(context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeGraph) User(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (f *fakeGraph) AddUser(_ context.Context, u model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return "", f.failAll
	}
	f.users[u.ID] = u
	return fmt.Sprintf("4:node:%d", len(f.users)), nil
}

func (f *fakeGraph) EditUser(_ context.Context, id int64, u model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.users[id]; !ok {
		return errs.ErrNotFound
	}
	u.ID = id
	f.users[id] = u
	return nil
}

func (f *fakeGraph) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.users, id)
	for e := range f.edges {
		if e.user == id {
			delete(f.edges, e)
		}
	}
	return nil
}

func (f *fakeGraph) UserBooks(_ context.Context, userID int64) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []model.Book
	for e := range f.edges {
		if e.user == userID {
			out = append(out, f.books[e.book])
		}
	}
	return out, nil
}

func (f *fakeGraph) AddRead(_ context.Context, userID int64, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	if _, ok := f.users[userID]; !ok {
		return errs.ErrNotFound
	}
	if _, ok := f.books[bookID]; !ok {
		return errs.ErrNotFound
	}
	f.edges[edge{user: userID, book: bookID}] = struct{}{} // merge: re-add is a no-op
	return nil
}

func (f *fakeGraph) RemoveRead(_ context.Context, userID int64, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.edges, edge{user: userID, book: bookID})
	return nil
}

func (f *fakeGraph) Recommend(context.Context, int64) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.recommend, nil
}

func TestCatalog_ReadsFailOpen(t *testing.T) {
	t.Parallel()
	g := newFakeGraph()
	g.failAll = errors.New("graph unreachable")
	c := NewCatalogService(g, zap.NewNop())
	ctx := context.Background()

	if books := c.Books(ctx); books == nil || len(books) != 0 {
		t.Fatalf("want empty non-nil slice on failure, got %#v", books)
	}
	if b := c.Book(ctx, "b1"); b != nil {
		t.Fatalf("want nil book on failure, got %+v", b)
	}
	if users := c.Users(ctx); users == nil || len(users) != 0 {
		t.Fatalf("want empty non-nil slice on failure, got %#v", users)
	}
	if u := c.User(ctx, 1); u != nil {
		t.Fatalf("want nil user on failure, got %+v", u)
	}
	if books := c.UserBooks(ctx, 1); books == nil || len(books) != 0 {
		t.Fatalf("want empty non-nil slice on failure, got %#v", books)
	}
	if recs := c.Recommendations(ctx, 1); recs == nil || len(recs) != 0 {
		t.Fatalf("want empty non-nil slice on failure, got %#v", recs)
	}
	if id := c.AddBook(ctx, model.Book{ID: "b1"}); id != "" {
		t.Fatalf("want empty node id on failure, got %q", id)
	}
}

func TestCatalog_MutationsPropagateErrors(t *testing.T) {
	t.Parallel()
	g := newFakeGraph()
	c := NewCatalogService(g, zap.NewNop())
	ctx := context.Background()

	if err := c.EditBook(ctx, "ghost", model.Book{}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := c.DeleteUser(ctx, 99); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := c.AddRead(ctx, 99, "ghost"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound when endpoints missing, got %v", err)
	}
}

func TestCatalog_BookRoundTrip(t *testing.T) {
	t.Parallel()
	g := newFakeGraph()
	c := NewCatalogService(g, zap.NewNop())
	ctx := context.Background()

	in := model.Book{ID: "b1", Title: "Dune", Author: "Herbert", Genre: "sf", Cover: "dune.jpg"}
	if nodeID := c.AddBook(ctx, in); nodeID == "" {
		t.Fatalf("AddBook returned empty node id")
	}
	got := c.Book(ctx, "b1")
	if got == nil || *got != in {
		t.Fatalf("want %+v, got %+v", in, got)
	}

	edited := model.Book{ID: "b1", Title: "Dune (revised)", Author: "Herbert", Genre: "sf", Cover: "v2.jpg"}
	if err := c.EditBook(ctx, "b1", edited); err != nil {
		t.Fatalf("EditBook: %v", err)
	}
	if got := c.Book(ctx, "b1"); got == nil || got.Title != "Dune (revised)" || got.Cover != "v2.jpg" {
		t.Fatalf("edit not visible: %+v", got)
	}

	if err := c.DeleteBook(ctx, "b1"); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if got := c.Book(ctx, "b1"); got != nil {
		t.Fatalf("want nil after delete, got %+v", got)
	}
}

func TestCatalog_AddRead_IdempotentUnderConcurrency(t *testing.T) {
	t.Parallel()
	g := newFakeGraph()
	c := NewCatalogService(g, zap.NewNop())
	ctx := context.Background()

	c.AddUser(ctx, model.User{ID: 1, Name: "alice"})
	c.AddBook(ctx, model.Book{ID: "b1", Title: "Dune"})

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.AddRead(ctx, 1, "b1"); err != nil {
				t.Errorf("AddRead: %v", err)
			}
		}()
	}
	wg.Wait()

	books := c.UserBooks(ctx, 1)
	if len(books) != 1 || books[0].ID != "b1" {
		t.Fatalf("want exactly one edge after %d concurrent adds, got %+v", n, books)
	}
}

func TestCatalog_RemoveRead_Noop(t *testing.T) {
	t.Parallel()
	g := newFakeGraph()
	c := NewCatalogService(g, zap.NewNop())
	ctx := context.Background()

	c.AddUser(ctx, model.User{ID: 1, Name: "alice"})
	c.AddBook(ctx, model.Book{ID: "b1"})
	if err := c.RemoveRead(ctx, 1, "b1"); err != nil {
		t.Fatalf("RemoveRead on absent edge must be a no-op, got %v", err)
	}

	if err := c.AddRead(ctx, 1, "b1"); err != nil {
		t.Fatalf("AddRead: %v", err)
	}
	if err := c.RemoveRead(ctx, 1, "b1"); err != nil {
		t.Fatalf("RemoveRead: %v", err)
	}
	if books := c.UserBooks(ctx, 1); len(books) != 0 {
		t.Fatalf("edge still present: %+v", books)
	}
}
