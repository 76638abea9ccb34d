package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/messaging"
)

type NatsConfig struct {
	Enabled      bool   `json:"enabled"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("nats: parsing start_timeout: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats: port %d out of range", n.Port))
	}

	return el.Err()
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if c.Host != "" {
		opts = append(opts, messaging.WithHost(c.Host))
	}
	if c.Port != 0 {
		opts = append(opts, messaging.WithPort(c.Port))
	}

	return messaging.NewNatsServer(opts...)
}

// NotificationConfig shapes the events published on the bus.
type NotificationConfig struct {
	SubjectPrefix string `json:"subject_prefix"`
	// Templates override the banner text per event name, e.g. "prestige".
	Templates    map[string]string `json:"templates"`
	StateChanges bool              `json:"state_changes"`
}

func (c *NotificationConfig) validate() error {
	el := errors.NewErrorList()
	for name := range c.Templates {
		if _, ok := game.ParseEventKind(name); !ok {
			el.Add(fmt.Errorf("notifications: unknown event %q", name))
		}
	}
	return el.Err()
}

func (c *NotificationConfig) prefix() string {
	if c.SubjectPrefix == "" {
		return messaging.DefaultSubjectPrefix
	}
	return c.SubjectPrefix
}

func (c *NotificationConfig) buildBridge(pub messaging.Publisher) (*messaging.EventBridge, error) {
	opts := []messaging.EventBridgeOpt{messaging.WithSubjectPrefix(c.prefix())}

	if len(c.Templates) > 0 {
		tmpls := make(map[game.EventKind]string, len(c.Templates))
		for name, v := range c.Templates {
			k, ok := game.ParseEventKind(name)
			if !ok {
				return nil, fmt.Errorf("unknown event %q", name)
			}
			tmpls[k] = v
		}
		opts = append(opts, messaging.WithTemplates(tmpls))
	}
	if c.StateChanges {
		opts = append(opts, messaging.WithStateChanges())
	}

	return messaging.NewEventBridge(pub, opts...)
}
