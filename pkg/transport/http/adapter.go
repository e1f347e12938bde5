// Package http serves the shelfd catalog API over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/shelfd/shelfd/pkg/api"
	"github.com/shelfd/shelfd/pkg/auth"
	"github.com/shelfd/shelfd/pkg/observability"
	"github.com/shelfd/shelfd/pkg/storage"
	"github.com/shelfd/shelfd/pkg/transport"
	"github.com/shelfd/shelfd/pkg/users"
)

// Adapter routes requests to the appropriate handler and serializes
// responses. Reads are public; mutations run behind the auth middleware
// and, for update and delete, the ownership guard.
type Adapter struct {
	catalog transport.CatalogStore
	users   transport.UserRegistry
	mux     *http.ServeMux
	config  Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr        string
	MaxBodySize int64
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		MaxBodySize: 1 << 20, // 1 MB
	}
}

// NewAdapter creates an HTTP adapter over the given stores. requireAuth is
// the middleware protecting mutating routes; it authenticates the request
// and injects the identity into the context (see auth.Require).
func NewAdapter(catalog transport.CatalogStore, registry transport.UserRegistry, requireAuth func(http.HandlerFunc) http.HandlerFunc, cfg Config) *Adapter {
	a := &Adapter{
		catalog: catalog,
		users:   registry,
		mux:     http.NewServeMux(),
		config:  cfg,
	}

	a.mux.HandleFunc("POST /register", a.handleRegister)
	a.mux.HandleFunc("GET /me", requireAuth(a.handleMe))
	a.mux.HandleFunc("GET /books", a.handleListBooks)
	a.mux.HandleFunc("GET /books/{id}", a.handleGetBook)
	a.mux.HandleFunc("POST /books", requireAuth(a.handleCreateBook))
	a.mux.HandleFunc("PUT /books/{id}", requireAuth(a.handleUpdateBook))
	a.mux.HandleFunc("DELETE /books/{id}", requireAuth(a.handleDeleteBook))
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return a
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest.
func (a *Adapter) Handler() http.Handler {
	return a.mux
}

// decodeJSON decodes the request body into v with the adapter's body limit.
// An empty body decodes to the zero value, so missing-field validation
// produces the precise error instead of a generic JSON complaint.
func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, v any) *api.APIError {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return api.NewInvalidRequestError("content_type", "Content-Type must be application/json")
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return api.NewInvalidRequestError("body", "request body too large")
	}

	var cerr *api.CoercionError
	if errors.As(err, &cerr) {
		if cerr.Param != "" {
			return api.NewInvalidRequestError(cerr.Param, cerr.Param+" must be an integer")
		}
		return api.NewInvalidRequestError("", "year and stock must be integers")
	}

	return api.NewInvalidRequestError("body", "invalid JSON: "+err.Error())
}

// handleRegister handles POST /register.
func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if apiErr := a.decodeJSON(w, r, &req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		transport.WriteAPIError(w, api.NewInvalidRequestError("username", "username and password are required"))
		return
	}
	if apiErr := api.ValidateUsername(username); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.users.Register(username, req.Password); err != nil {
		if errors.Is(err, users.ErrExists) {
			transport.WriteAPIError(w, api.NewConflictError("username", "username already exists"))
			return
		}
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			transport.WriteAPIError(w, apiErr)
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	observability.UsersTotal.Inc()
	transport.WriteJSON(w, http.StatusCreated, api.MessageResponse{Message: "User registered successfully"})
}

// handleMe handles GET /me. The auth middleware has already established
// the identity; this just echoes it, which lets clients verify credentials.
func (a *Adapter) handleMe(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError("Authentication required"))
		return
	}
	transport.WriteJSON(w, http.StatusOK, api.IdentityResponse{Username: id.Subject})
}

// handleListBooks handles GET /books. Public.
func (a *Adapter) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.catalog.List(r.Context())
	if err != nil {
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}
	transport.WriteJSON(w, http.StatusOK, books)
}

// handleGetBook handles GET /books/{id}. Public.
func (a *Adapter) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := a.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Book not found"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}
	transport.WriteJSON(w, http.StatusOK, book)
}

// handleCreateBook handles POST /books. The owner is the authenticated
// identity; an owner sent by the client has no field to land in and is
// dropped during decoding.
func (a *Adapter) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		transport.WriteAPIError(w, api.NewUnauthenticatedError("Authentication required"))
		return
	}

	var req api.CreateBookRequest
	if apiErr := a.decodeJSON(w, r, &req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if apiErr := api.ValidateCreateBook(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	book := req.Book(id.Subject)
	if err := a.catalog.Insert(r.Context(), book); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			transport.WriteAPIError(w, api.NewConflictError("id", "Book with this id already exists"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	observability.BooksTotal.Inc()
	transport.WriteJSON(w, http.StatusCreated, api.BookResponse{Message: "Book created", Book: book})
}

// handleUpdateBook handles PUT /books/{id}. Missing book wins over missing
// ownership: a non-owner probing an unknown ID sees 404, not 403.
func (a *Adapter) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	book, err := a.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Book not found"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	if apiErr := a.authorizeOwner(r, book); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	var patch api.BookPatch
	if apiErr := a.decodeJSON(w, r, &patch); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	updated, err := a.catalog.Update(r.Context(), book.ID, &patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Book not found"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	transport.WriteJSON(w, http.StatusOK, api.BookResponse{Message: "Book updated", Book: updated})
}

// handleDeleteBook handles DELETE /books/{id}.
func (a *Adapter) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	book, err := a.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Book not found"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	if apiErr := a.authorizeOwner(r, book); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	if err := a.catalog.Remove(r.Context(), book.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			transport.WriteAPIError(w, api.NewNotFoundError("Book not found"))
			return
		}
		transport.WriteAPIError(w, api.NewServerError(err.Error()))
		return
	}

	observability.BooksTotal.Dec()
	transport.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Book deleted"})
}

// authorizeOwner runs the ownership guard for a mutation on book.
func (a *Adapter) authorizeOwner(r *http.Request, book *api.Book) *api.APIError {
	err := auth.Authorize(auth.IdentityFromContext(r.Context()), book.Owner)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrForbidden):
		return api.NewForbiddenError("Forbidden: not the owner of this resource")
	default:
		return api.NewUnauthenticatedError("Authentication required")
	}
}
