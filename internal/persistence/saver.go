package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/storage"
)

type SaverOpt func(*Saver)

// WithKey overrides the record key.
func WithKey(key string) SaverOpt {
	return func(s *Saver) {
		s.key = key
	}
}

// WithInterval batches writes: state changes mark the saver dirty and Tick
// flushes once the interval has elapsed. Zero writes on every change.
func WithInterval(d time.Duration) SaverOpt {
	return func(s *Saver) {
		s.interval = d
	}
}

// Saver writes the store's persisted subset whenever it changes.
type Saver struct {
	store  *game.Store
	storer storage.Storer
	key    string

	interval time.Duration

	mu      sync.Mutex
	dirty   bool
	elapsed time.Duration
}

func NewSaver(store *game.Store, storer storage.Storer, opts ...SaverOpt) *Saver {
	s := &Saver{
		store:  store,
		storer: storer,
		key:    Key,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach subscribes the saver to the store and returns a func that detaches it.
func (s *Saver) Attach() func() {
	unsubReset := s.store.Subscribe(game.EventGameReset, s.onReset)
	unsubChange := s.store.Subscribe(game.EventStateChanged, s.onChange)
	return func() {
		unsubReset()
		unsubChange()
	}
}

func (s *Saver) onReset(e game.Event) {
	if !e.Purge {
		return
	}
	if err := s.Clear(); err != nil {
		slog.Error("clearing saved state", "key", s.key, "error", err)
		return
	}
	slog.Info("cleared saved state", "key", s.key)
}

func (s *Saver) onChange(game.Event) {
	if s.interval > 0 {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return
	}
	if err := s.Save(); err != nil {
		slog.Warn("saving state", "key", s.key, "error", err)
	}
}

// Save writes the current state immediately.
func (s *Saver) Save() error {
	snap := NewSnapshot(s.store.SaveState())
	if err := storage.Put(s.storer, snap.Record(s.key)); err != nil {
		return fmt.Errorf("saving %s: %w", s.key, err)
	}

	s.mu.Lock()
	s.dirty = false
	s.elapsed = 0
	s.mu.Unlock()
	return nil
}

// Clear removes the saved record.
func (s *Saver) Clear() error {
	return s.storer.Delete(s.key)
}

// Tick flushes pending changes once the save interval has elapsed.
func (s *Saver) Tick(ctx context.Context, delta time.Duration) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	s.elapsed += delta
	due := s.elapsed >= s.interval
	s.mu.Unlock()

	if !due {
		return nil
	}
	if err := s.Save(); err != nil {
		slog.WarnContext(ctx, "saving state", "key", s.key, "error", err)
	}
	return nil
}

// Flush writes pending changes regardless of the interval.
func (s *Saver) Flush() error {
	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}
	return s.Save()
}
