package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/driver"
)

type Config struct {
	TickInterval  string             `json:"tick_interval"`
	Storage       StorageConfig      `json:"storage"`
	Nats          NatsConfig         `json:"nats"`
	Consoles      ConsoleConfig      `json:"consoles"`
	Audio         AudioConfig        `json:"audio"`
	Terminal      TerminalConfig     `json:"terminal"`
	Notifications NotificationConfig `json:"notifications"`
	Recovery      RecoveryConfig     `json:"recovery"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 || d > time.Second {
			el.Add(fmt.Errorf("tick_interval must be between 0 and 1s"))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Consoles.validate())
	el.Add(c.Audio.validate())
	el.Add(c.Terminal.validate())
	el.Add(c.Notifications.validate())
	el.Add(c.Recovery.validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return driver.DefaultTickLength
	}
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

// RecoveryConfig controls how the simulation reacts to repeated crashes.
type RecoveryConfig struct {
	CrashWindow string `json:"crash_window"`
	ResetAfter  int    `json:"reset_after"`
}

func (c *RecoveryConfig) validate() error {
	el := errors.NewErrorList()

	if c.CrashWindow != "" {
		d, err := time.ParseDuration(c.CrashWindow)
		if err != nil {
			el.Add(fmt.Errorf("recovery: parsing crash_window: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("recovery: crash_window must be positive"))
		}
	}
	if c.ResetAfter < 0 {
		el.Add(fmt.Errorf("recovery: reset_after must not be negative"))
	}

	return el.Err()
}

func (c *RecoveryConfig) buildBoundary(r driver.Resetter) *driver.Boundary {
	var opts []driver.BoundaryOpt
	if c.CrashWindow != "" {
		d, _ := time.ParseDuration(c.CrashWindow)
		opts = append(opts, driver.WithCrashWindow(d))
	}
	if c.ResetAfter > 0 {
		opts = append(opts, driver.WithPolicy(driver.ResetAfter(c.ResetAfter)))
	}
	return driver.NewBoundary(r, opts...)
}
