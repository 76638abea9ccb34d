package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second / 60
)

// Ticker is advanced once per simulation step by the elapsed wall time.
type Ticker interface {
	Tick(ctx context.Context, delta time.Duration) error
}

type SimDriver struct {
	tickLength time.Duration
	tickers    []Ticker
	boundary   *Boundary
	now        func() time.Time
}

func NewSimDriver(tickers []Ticker, opts ...SimDriverOpt) *SimDriver {
	d := &SimDriver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *SimDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := d.now()
			delta := now.Sub(last)
			last = now

			err := d.Tick(ctx, delta)
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances every ticker in order. With a boundary in place a failing
// ticker is recorded as a crash and the remaining tickers still run.
func (d *SimDriver) Tick(ctx context.Context, delta time.Duration) error {
	for _, t := range d.tickers {
		if d.boundary == nil {
			if err := t.Tick(ctx, delta); err != nil {
				return err
			}
			continue
		}

		if err := d.boundary.Run(ctx, func() error { return t.Tick(ctx, delta) }); err != nil {
			return err
		}
	}
	return nil
}
