package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// SessionRunner serves one interactive connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, rw io.ReadWriter) error
}

type ConnectionManagerOpt func(*ConnectionManager)

// WithMaxSessions caps concurrent sessions. Zero means no limit.
func WithMaxSessions(n int) ConnectionManagerOpt {
	return func(m *ConnectionManager) {
		m.maxSessions = n
	}
}

// ConnectionManager hands accepted connections to a SessionRunner and keeps
// track of which sessions are open.
type ConnectionManager struct {
	runner      SessionRunner
	maxSessions int

	mu       sync.Mutex
	sessions map[string]struct{}
}

func NewConnectionManager(runner SessionRunner, opts ...ConnectionManagerOpt) *ConnectionManager {
	m := &ConnectionManager{
		runner:   runner,
		sessions: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active returns the number of open sessions.
func (m *ConnectionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	id, ok := m.open()
	if !ok {
		fmt.Fprintf(conn, "Too many consoles are connected. Try again later.\n")
		slog.WarnContext(ctx, "rejecting console session", "max_sessions", m.maxSessions)
		return
	}
	defer m.close(id)

	slog.InfoContext(ctx, "console session opened", "session", id)
	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "console session", "session", id, "error", err)
	}
	slog.InfoContext(ctx, "console session closed", "session", id)
}

func (m *ConnectionManager) open() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return "", false
	}
	id := uuid.NewString()
	m.sessions[id] = struct{}{}
	return id, true
}

func (m *ConnectionManager) close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
