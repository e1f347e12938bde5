// Package memory provides the in-memory implementation of
// transport.CatalogStore. The catalog is deliberately not persisted;
// books live for the lifetime of the process.
package memory

import (
	"context"
	"sync"

	"github.com/shelfd/shelfd/pkg/api"
	"github.com/shelfd/shelfd/pkg/storage"
	"github.com/shelfd/shelfd/pkg/transport"
)

// Store is an in-memory book catalog guarded by a read-write mutex.
// All operations are atomic with respect to a single store instance.
type Store struct {
	mu    sync.RWMutex
	books map[string]*api.Book
}

// Ensure Store implements transport.CatalogStore at compile time.
var _ transport.CatalogStore = (*Store)(nil)

// New creates an empty catalog store.
func New() *Store {
	return &Store{
		books: make(map[string]*api.Book),
	}
}

// Seed returns a catalog pre-populated with the default inventory owned
// by the bootstrap admin account.
func Seed() *Store {
	s := New()
	for _, b := range []*api.Book{
		{ID: "BK001", Title: "Designing Your Life", Author: "Bill Burnett", Publisher: "Knopf", Year: 2016, Genre: "Self-help", Stock: 5, Owner: "admin"},
		{ID: "BK002", Title: "Atomic Habits", Author: "James Clear", Publisher: "Avery", Year: 2018, Genre: "Self-help", Stock: 8, Owner: "admin"},
		{ID: "BK003", Title: "Mindset: The New Psychology of Success", Author: "Carol S. Dweck", Publisher: "Random House", Year: 2006, Genre: "Psychology", Stock: 4, Owner: "admin"},
	} {
		s.books[b.ID] = b
	}
	return s
}

// Get retrieves a book by ID. Returns storage.ErrNotFound if absent.
func (s *Store) Get(_ context.Context, id string) (*api.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b.Clone(), nil
}

// List returns a snapshot of the whole catalog keyed by book ID. The
// snapshot reflects state at call time and does not track later writes.
func (s *Store) List(_ context.Context) (map[string]*api.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*api.Book, len(s.books))
	for id, b := range s.books {
		out[id] = b.Clone()
	}
	return out, nil
}

// Insert adds a new book. Returns storage.ErrConflict when the ID is
// already taken.
func (s *Store) Insert(_ context.Context, book *api.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[book.ID]; exists {
		return storage.ErrConflict
	}
	s.books[book.ID] = book.Clone()
	return nil
}

// Update applies a patch to the book with the given ID and returns the
// updated record. The patch carries only mutable fields, so ID and Owner
// cannot change. Returns storage.ErrNotFound if absent.
func (s *Store) Update(_ context.Context, id string, patch *api.BookPatch) (*api.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(b)
	return b.Clone(), nil
}

// Remove deletes the book with the given ID. Returns storage.ErrNotFound
// if absent; a second remove of the same ID therefore fails.
func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

// Len reports the number of books in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}
