package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/terminal"
)

type TerminalConfig struct {
	Enabled       bool   `json:"enabled"`
	FrameInterval string `json:"frame_interval"`
}

func (c *TerminalConfig) validate() error {
	el := errors.NewErrorList()

	if c.FrameInterval != "" {
		d, err := time.ParseDuration(c.FrameInterval)
		if err != nil {
			el.Add(fmt.Errorf("terminal: parsing frame_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("terminal: frame_interval must be positive"))
		}
	}

	return el.Err()
}

func (c *TerminalConfig) buildFrontend(store *game.Store, engine terminal.Engine) *terminal.Frontend {
	var opts []terminal.FrontendOpt
	if c.FrameInterval != "" {
		d, _ := time.ParseDuration(c.FrameInterval)
		opts = append(opts, terminal.WithFrameInterval(d))
	}
	return terminal.NewFrontend(store, engine, opts...)
}
