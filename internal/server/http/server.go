// Package httpserver is the thin REST boundary over the application
// services. It does no business logic: handlers decode the request, call one
// service operation and render its result in the wire shapes the original
// API exposed (booleans for mutations, null for absent lookups).
package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/bookgraph/bookgraph/internal/model"
	"github.com/bookgraph/bookgraph/internal/service"
)

// Server wires the application services to a chi router.
type Server struct {
	auth    service.AuthService
	catalog service.CatalogService
	log     *zap.Logger
}

// New constructs the HTTP boundary.
func New(auth service.AuthService, catalog service.CatalogService, log *zap.Logger) *Server {
	return &Server{auth: auth, catalog: catalog, log: log}
}

// Router builds the route tree with CORS, logging and panic recovery.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "Hello, world!")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/auth/users", s.handleAccounts)
		r.Delete("/auth/users/{id}", s.handleDeregister)

		r.Get("/books", s.handleBooks)
		r.Post("/books", s.handleAddBook)
		r.Get("/books/{id}", s.handleBook)
		r.Put("/books/{id}", s.handleEditBook)
		r.Delete("/books/{id}", s.handleDeleteBook)

		r.Get("/users", s.handleUsers)
		r.Post("/users", s.handleAddUser)
		r.Get("/users/{id}", s.handleUser)
		r.Put("/users/{id}", s.handleEditUser)
		r.Delete("/users/{id}", s.handleDeleteUser)

		r.Get("/users/{id}/books", s.handleUserBooks)
		r.Post("/users/{id}/books", s.handleAddRead)
		r.Delete("/users/{id}/books", s.handleRemoveRead)
		r.Get("/users/{id}/recommendations", s.handleRecommendations)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// handleRegister creates an account from form-encoded credentials and
// returns the public projection, or null when registration failed.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	c, err := s.auth.Register(r.Context(), username, password)
	if err != nil {
		s.log.Error("register failed", zap.String("username", username), zap.Error(err))
		writeJSON(w, nil)
		return
	}
	writeJSON(w, model.AccountInfo{ID: c.ID, Username: c.Username})
}

// handleLogin verifies form-encoded credentials. Any miss, including a
// storage failure, renders as null.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	id, ok, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		s.log.Error("login failed", zap.String("username", username), zap.Error(err))
		writeJSON(w, nil)
		return
	}
	if !ok {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, model.AccountInfo{ID: id, Username: username})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.auth.Accounts(r.Context())
	if err != nil {
		s.log.Error("list accounts failed", zap.Error(err))
		writeJSON(w, []model.AccountInfo{})
		return
	}
	if accounts == nil {
		accounts = []model.AccountInfo{}
	}
	writeJSON(w, accounts)
}

func (s *Server) handleDeregister(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.auth.Deregister(r.Context(), id) == nil)
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.Books(r.Context()))
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.Book(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var b model.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.AddBook(r.Context(), b))
}

func (s *Server) handleEditBook(w http.ResponseWriter, r *http.Request) {
	var b model.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.EditBook(r.Context(), chi.URLParam(r, "id"), b) == nil)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.DeleteBook(r.Context(), chi.URLParam(r, "id")) == nil)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog.Users(r.Context()))
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.User(r.Context(), id))
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.AddUser(r.Context(), u))
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.EditUser(r.Context(), id, u) == nil)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.DeleteUser(r.Context(), id) == nil)
}

func (s *Server) handleUserBooks(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.UserBooks(r.Context(), id))
}

// bookIDFromBody reads the request body as the target book id. The body is
// either the bare id or a JSON string literal.
func bookIDFromBody(r *http.Request) string {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(string(body)), `"`)
}

func (s *Server) handleAddRead(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.AddRead(r.Context(), id, bookIDFromBody(r)) == nil)
}

func (s *Server) handleRemoveRead(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.RemoveRead(r.Context(), id, bookIDFromBody(r)) == nil)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.catalog.Recommendations(r.Context(), id))
}
