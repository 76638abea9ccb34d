package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

const (
	// DefaultCrashWindow is how close together two crashes must be to count
	// toward the same streak.
	DefaultCrashWindow = 5 * time.Second
	DefaultResetAfter  = 3
)

// Recovery is what the boundary does after a crash.
type Recovery int

const (
	// RecoverContinue keeps running with the current state.
	RecoverContinue Recovery = iota
	// RecoverReset wipes persisted progress and restarts from the menu.
	RecoverReset
)

func (r Recovery) String() string {
	if r == RecoverReset {
		return "reset"
	}
	return "continue"
}

// CrashPolicy decides how to recover given the number of crashes seen in the
// current window.
type CrashPolicy func(crashes int, err error) Recovery

// ResetAfter continues until n crashes land inside one window, then resets.
func ResetAfter(n int) CrashPolicy {
	return func(crashes int, _ error) Recovery {
		if n > 0 && crashes >= n {
			return RecoverReset
		}
		return RecoverContinue
	}
}

// Resetter wipes state when the policy asks for a reset.
type Resetter interface {
	ResetGame(clearPersisted bool) error
}

type BoundaryOpt func(*Boundary)

func WithCrashWindow(d time.Duration) BoundaryOpt {
	return func(b *Boundary) {
		b.window = d
	}
}

func WithPolicy(p CrashPolicy) BoundaryOpt {
	return func(b *Boundary) {
		b.policy = p
	}
}

func WithBoundaryClock(now func() time.Time) BoundaryOpt {
	return func(b *Boundary) {
		b.now = now
	}
}

// Boundary turns panics and errors from the simulation into counted crashes.
type Boundary struct {
	mu sync.Mutex

	resetter Resetter
	policy   CrashPolicy
	window   time.Duration
	now      func() time.Time

	crashes   int
	lastCrash time.Time
}

func NewBoundary(r Resetter, opts ...BoundaryOpt) *Boundary {
	b := &Boundary{
		resetter: r,
		policy:   ResetAfter(DefaultResetAfter),
		window:   DefaultCrashWindow,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run calls fn and absorbs whatever goes wrong. It only returns an error when
// a requested reset itself fails.
func (b *Boundary) Run(ctx context.Context, fn func() error) error {
	err := call(fn)
	if err == nil {
		return nil
	}

	b.mu.Lock()
	now := b.now()
	if !b.lastCrash.IsZero() && now.Sub(b.lastCrash) < b.window {
		b.crashes++
	} else {
		b.crashes = 1
	}
	b.lastCrash = now
	crashes := b.crashes
	b.mu.Unlock()

	action := b.policy(crashes, err)
	slog.ErrorContext(ctx, "simulation crashed", "error", err, "crashes", crashes, "recovery", action)

	if action != RecoverReset || b.resetter == nil {
		return nil
	}

	if rerr := b.resetter.ResetGame(true); rerr != nil {
		return fmt.Errorf("resetting after crash: %w", rerr)
	}

	b.mu.Lock()
	b.crashes = 0
	b.lastCrash = time.Time{}
	b.mu.Unlock()
	return nil
}

// Crashes is the number of crashes in the current window.
func (b *Boundary) Crashes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.crashes
}

func call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn()
}
