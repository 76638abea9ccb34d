package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store, err := NewSQLStore(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func TestSQLStore_SaveGetDelete(t *testing.T) {
	store := newTestSQLStore(t)

	if _, err := store.Get("fps-game-storage"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Save("fps-game-storage", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save("fps-game-storage", []byte(`{"version":2}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := store.Get("fps-game-storage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "overwritten", string(data), `{"version":2}`)

	var count int64
	store.db.Model(&sqlRecord{}).Count(&count)
	testutil.AssertEqual(t, "rows", count, int64(1))

	if err := store.Delete("fps-game-storage"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get("fps-game-storage"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
