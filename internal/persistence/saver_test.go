package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/storage"
	"github.com/pixil98/go-testutil"
)

func savedScore(t *testing.T, st storage.Storer, key string) int {
	t.Helper()

	data, err := st.Get(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rec storage.Record[*Snapshot]
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "version", rec.Version, Version)
	testutil.AssertEqual(t, "id", rec.Identifier, storage.Identifier(key))
	return rec.Spec.Score
}

func TestSaver_WritesOnChange(t *testing.T) {
	st := storage.NewMemoryStore()
	store := game.NewStore(catalog.Templates{})
	detach := NewSaver(store, st).Attach()

	_ = store.AddScore(30)
	testutil.AssertEqual(t, "score", savedScore(t, st, Key), 30)

	_ = store.AddScore(5)
	testutil.AssertEqual(t, "score", savedScore(t, st, Key), 35)

	detach()
	_ = store.AddScore(100)
	testutil.AssertEqual(t, "score after detach", savedScore(t, st, Key), 35)
}

func TestSaver_CustomKey(t *testing.T) {
	st := storage.NewMemoryStore()
	store := game.NewStore(catalog.Templates{})
	NewSaver(store, st, WithKey("slot-2")).Attach()

	_ = store.AddScore(1)

	testutil.AssertEqual(t, "score", savedScore(t, st, "slot-2"), 1)
	if _, err := st.Get(Key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected nothing under the default key, got %v", err)
	}
}

func TestSaver_Interval(t *testing.T) {
	tests := map[string]struct {
		ticks    []time.Duration
		expSaved bool
	}{
		"not yet due": {
			ticks: []time.Duration{200 * time.Millisecond, 300 * time.Millisecond},
		},
		"due after accumulated ticks": {
			ticks:    []time.Duration{600 * time.Millisecond, 500 * time.Millisecond},
			expSaved: true,
		},
		"single long tick": {
			ticks:    []time.Duration{2 * time.Second},
			expSaved: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			st := storage.NewMemoryStore()
			store := game.NewStore(catalog.Templates{})
			s := NewSaver(store, st, WithInterval(time.Second))
			s.Attach()

			_ = store.AddScore(10)
			if _, err := st.Get(Key); !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("expected no immediate write, got %v", err)
			}

			for _, d := range tt.ticks {
				if err := s.Tick(context.Background(), d); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			_, err := st.Get(Key)
			testutil.AssertEqual(t, "saved", err == nil, tt.expSaved)
		})
	}
}

func TestSaver_TickIdleDoesNothing(t *testing.T) {
	st := storage.NewMemoryStore()
	store := game.NewStore(catalog.Templates{})
	s := NewSaver(store, st, WithInterval(time.Millisecond))

	_ = s.Tick(context.Background(), time.Hour)

	if _, err := st.Get(Key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected no write without changes, got %v", err)
	}
}

func TestSaver_Flush(t *testing.T) {
	st := storage.NewMemoryStore()
	store := game.NewStore(catalog.Templates{})
	s := NewSaver(store, st, WithInterval(time.Minute))
	s.Attach()

	if err := s.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.Get(Key); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("clean flush should not write, got %v", err)
	}

	_ = store.AddScore(9)
	if err := s.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "score", savedScore(t, st, Key), 9)
}

func TestSaver_ResetPurges(t *testing.T) {
	tests := map[string]struct {
		purge      bool
		expPresent bool
	}{
		"plain reset keeps the record": {purge: false, expPresent: true},
		"purge removes the record":     {purge: true, expPresent: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			st := storage.NewMemoryStore()
			store := game.NewStore(catalog.Templates{})
			s := NewSaver(store, st, WithInterval(time.Minute))
			s.Attach()

			_ = store.AddScore(40)
			if err := s.Flush(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err := store.ResetGame(tt.purge); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err := st.Get(Key)
			testutil.AssertEqual(t, "present", err == nil, tt.expPresent)
		})
	}
}

func TestSaver_ResetPurgeThenImmediateSave(t *testing.T) {
	st := storage.NewMemoryStore()
	store := game.NewStore(catalog.Templates{})
	NewSaver(store, st).Attach()

	_ = store.AddScore(40)
	_ = store.ResetGame(true)

	testutil.AssertEqual(t, "score", savedScore(t, st, Key), 0)
}
