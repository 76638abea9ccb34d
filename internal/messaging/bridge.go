package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/pixil98/go-fps/internal/game"
)

const DefaultSubjectPrefix = "fps.events"

// Publisher delivers a payload on a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Notification is the JSON payload published for each store event.
type Notification struct {
	Kind     string    `json:"kind"`
	Slot     string    `json:"slot,omitempty"`
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Previous int       `json:"previous"`
	Current  int       `json:"current"`
	Purge    bool      `json:"purge,omitempty"`
	Message  string    `json:"message,omitempty"`
	Time     time.Time `json:"time"`
}

type EventBridgeOpt func(*EventBridge)

func WithSubjectPrefix(p string) EventBridgeOpt {
	return func(b *EventBridge) {
		b.prefix = p
	}
}

// WithTemplates overrides or adds banner templates per event kind.
func WithTemplates(t map[game.EventKind]string) EventBridgeOpt {
	return func(b *EventBridge) {
		for k, v := range t {
			b.sources[k] = v
		}
	}
}

// WithStateChanges also publishes the catch-all state_changed event.
func WithStateChanges() EventBridgeOpt {
	return func(b *EventBridge) {
		b.stateChanges = true
	}
}

func WithBridgeClock(now func() time.Time) EventBridgeOpt {
	return func(b *EventBridge) {
		b.now = now
	}
}

// EventBridge republishes store events onto the message bus so consoles and
// other local observers can follow the game.
type EventBridge struct {
	pub          Publisher
	prefix       string
	sources      map[game.EventKind]string
	templates    map[game.EventKind]*template.Template
	stateChanges bool
	now          func() time.Time
}

func NewEventBridge(pub Publisher, opts ...EventBridgeOpt) (*EventBridge, error) {
	b := &EventBridge{
		pub:     pub,
		prefix:  DefaultSubjectPrefix,
		sources: map[game.EventKind]string{},
		now:     time.Now,
	}
	for k, v := range DefaultTemplates {
		b.sources[k] = v
	}
	for _, opt := range opts {
		opt(b)
	}

	tmpls, err := parseTemplates(b.sources)
	if err != nil {
		return nil, err
	}
	b.templates = tmpls

	return b, nil
}

// Subject is where events of kind are published.
func (b *EventBridge) Subject(kind game.EventKind) string {
	return fmt.Sprintf("%s.%s", b.prefix, kind)
}

// Attach forwards every store event until the returned func is called.
func (b *EventBridge) Attach(store *game.Store) func() {
	return store.SubscribeAll(b.handle)
}

func (b *EventBridge) handle(e game.Event) {
	if e.Kind == game.EventStateChanged && !b.stateChanges {
		return
	}
	if err := b.Publish(e); err != nil {
		slog.Warn("publishing event", "kind", e.Kind, "error", err)
	}
}

// Publish renders and sends a single event.
func (b *EventBridge) Publish(e game.Event) error {
	n := Notification{
		Kind:     e.Kind.String(),
		Slot:     string(e.Slot),
		ID:       e.ID,
		Name:     e.Name,
		Previous: e.Previous,
		Current:  e.Current,
		Purge:    e.Purge,
		Time:     b.now(),
	}

	if tmpl, ok := b.templates[e.Kind]; ok {
		msg, err := execute(tmpl, n)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", e.Kind, err)
		}
		n.Message = msg
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", e.Kind, err)
	}

	return b.pub.Publish(b.Subject(e.Kind), data)
}
