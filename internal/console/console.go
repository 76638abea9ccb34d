package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/display"
	"github.com/pixil98/go-fps/internal/game"
)

var errQuit = errors.New("quit")

// Subscriber delivers bus messages to a handler until unsubscribed.
type Subscriber interface {
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

type ConsoleOpt func(*Console)

// WithEvents lets sessions follow published game events with 'watch'.
func WithEvents(s Subscriber, subject string) ConsoleOpt {
	return func(c *Console) {
		c.events = s
		c.subject = subject
	}
}

func WithRand(r *rand.Rand) ConsoleOpt {
	return func(c *Console) {
		c.rng = r
	}
}

// Console is a line-oriented admin and spectator interface to a running game.
// Gameplay actions go through the engine's input queue; menu actions call the
// store directly.
type Console struct {
	store   *game.Store
	input   *combat.InputQueue
	events  Subscriber
	subject string
	rng     *rand.Rand

	rngMu    sync.Mutex
	commands map[string]command
}

type command struct {
	usage string
	help  string
	run   func(s *session, args []string) error
}

func NewConsole(store *game.Store, input *combat.InputQueue, opts ...ConsoleOpt) *Console {
	c := &Console{
		store: store,
		input: input,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	c.commands = c.buildCommands()
	return c
}

type session struct {
	ctx context.Context
	c   *Console
	r   *bufio.Reader

	mu sync.Mutex
	w  io.Writer
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

// RunSession serves one connection until it quits or disconnects.
func (c *Console) RunSession(ctx context.Context, rw io.ReadWriter) error {
	s := &session{
		ctx: ctx,
		c:   c,
		r:   bufio.NewReader(rw),
		w:   rw,
	}

	s.printf("%s\n", display.Wrap("Connected to the game console. Type 'help' for a list of commands."))
	if c.store.StorageCorrupted() {
		s.printf("%s\n", display.Wrap("Warning: saved progress could not be read and was reset to defaults."))
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := Prompt(s.r, &lockedWriter{s}, "> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, ok := c.commands[strings.ToLower(fields[0])]
		if !ok {
			s.printf("Unknown command %q. Type 'help' for a list of commands.\n", fields[0])
			continue
		}

		err = cmd.run(s, fields[1:])
		if errors.Is(err, errQuit) {
			s.printf("Goodbye.\n")
			return nil
		}
		if err != nil {
			slog.DebugContext(ctx, "console command", "command", fields[0], "error", err)
			s.printf("%s\n", display.Capitalize(err.Error()))
		}
	}
}

type lockedWriter struct {
	s *session
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.w.Write(p)
}

func (c *Console) help(s *session, _ []string) error {
	names := make([]string, 0, len(c.commands))
	for n := range c.commands {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, n := range names {
		cmd := c.commands[n]
		fmt.Fprintf(&b, "  %-18s %s\n", cmd.usage, cmd.help)
	}
	s.printf("Commands:\n%s", b.String())
	return nil
}
