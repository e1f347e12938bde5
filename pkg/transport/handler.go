package transport

import (
	"context"

	"github.com/shelfd/shelfd/pkg/api"
)

// CatalogStore handles persistence, retrieval, and deletion of books.
// Implementations must keep book IDs unique at all times and must not let
// an update touch ID or Owner.
type CatalogStore interface {
	// Get retrieves a book by ID. Returns storage.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*api.Book, error)

	// List returns a snapshot of the catalog keyed by book ID, reflecting
	// state at call time.
	List(ctx context.Context) (map[string]*api.Book, error)

	// Insert adds a new book. Returns storage.ErrConflict if the ID is taken.
	Insert(ctx context.Context, book *api.Book) error

	// Update applies a patch of mutable fields and returns the updated
	// book. Returns storage.ErrNotFound if absent.
	Update(ctx context.Context, id string, patch *api.BookPatch) (*api.Book, error)

	// Remove deletes a book. Returns storage.ErrNotFound if absent.
	Remove(ctx context.Context, id string) error
}

// UserRegistry handles account creation. Implementations return
// users.ErrExists for a taken username and the password-policy error
// verbatim for a weak password.
type UserRegistry interface {
	Register(username, password string) error
}
