package driver

import "time"

type SimDriverOpt func(*SimDriver)

func WithTickLength(tickLength time.Duration) SimDriverOpt {
	return func(d *SimDriver) {
		d.tickLength = tickLength
	}
}

// WithBoundary contains ticker failures instead of stopping the driver.
func WithBoundary(b *Boundary) SimDriverOpt {
	return func(d *SimDriver) {
		d.boundary = b
	}
}

func WithClock(now func() time.Time) SimDriverOpt {
	return func(d *SimDriver) {
		d.now = now
	}
}
