package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shelfd/shelfd/pkg/api"
	"github.com/shelfd/shelfd/pkg/storage"
)

func testBook(id string) *api.Book {
	return &api.Book{
		ID:        id,
		Title:     "X",
		Author:    "Y",
		Publisher: "Z",
		Year:      2020,
		Genre:     "G",
		Stock:     3,
		Owner:     "carol",
	}
}

func TestInsertAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Insert(ctx, testBook("BK100")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	got, err := s.Get(ctx, "BK100")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "X" || got.Owner != "carol" {
		t.Errorf("got %+v, want inserted fields", got)
	}

	// Repeated reads without writes return identical content.
	again, err := s.Get(ctx, "BK100")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if *again != *got {
		t.Errorf("second Get = %+v, want %+v", again, got)
	}
}

func TestInsertConflict(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Insert(ctx, testBook("BK100")); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := s.Insert(ctx, testBook("BK100")); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("second Insert = %v, want ErrConflict", err)
	}
}

func TestGetNotFound(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "BK404"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
}

func TestGetReturnsClone(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Insert(ctx, testBook("BK100"))

	got, _ := s.Get(ctx, "BK100")
	got.Title = "mutated"

	fresh, _ := s.Get(ctx, "BK100")
	if fresh.Title != "X" {
		t.Errorf("Title = %q, caller mutation leaked into store", fresh.Title)
	}
}

func TestListSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Insert(ctx, testBook("BK100"))
	s.Insert(ctx, testBook("BK101"))

	snap, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("len(snap) = %d, want 2", len(snap))
	}

	// The snapshot does not track later writes.
	s.Insert(ctx, testBook("BK102"))
	if len(snap) != 2 {
		t.Errorf("snapshot grew to %d after insert", len(snap))
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Insert(ctx, testBook("BK100"))

	stock := api.Integer(10)
	updated, err := s.Update(ctx, "BK100", &api.BookPatch{Stock: &stock})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Stock != 10 {
		t.Errorf("Stock = %d, want 10", updated.Stock)
	}
	if updated.Title != "X" || updated.Year != 2020 || updated.Owner != "carol" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}

	if _, err := s.Update(ctx, "BK404", &api.BookPatch{}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Insert(ctx, testBook("BK100"))

	if err := s.Remove(ctx, "BK100"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := s.Get(ctx, "BK100"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Remove = %v, want ErrNotFound", err)
	}
	if err := s.Remove(ctx, "BK100"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Remove = %v, want ErrNotFound", err)
	}
}

func TestSeed(t *testing.T) {
	s := Seed()
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	b, err := s.Get(context.Background(), "BK002")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if b.Owner != "admin" {
		t.Errorf("Owner = %q, want %q", b.Owner, "admin")
	}
}

func TestConcurrentMutations(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Insert(ctx, testBook("BK100"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			stock := api.Integer(7)
			s.Update(ctx, "BK100", &api.BookPatch{Stock: &stock})
		}()
		go func() {
			defer wg.Done()
			s.Get(ctx, "BK100")
			s.List(ctx)
		}()
	}
	wg.Wait()

	b, err := s.Get(ctx, "BK100")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if b.Stock != 7 {
		t.Errorf("Stock = %d, want 7", b.Stock)
	}
}
