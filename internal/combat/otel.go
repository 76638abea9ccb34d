package combat

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/pixil98/go-fps/internal/combat"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	shots   metric.Int64Counter
	reloads metric.Int64Counter
	hits    metric.Int64Counter
	kills   metric.Int64Counter

	live        atomic.Int64
	projectiles metric.Int64ObservableGauge
}

func newMetrics(m metric.Meter) (*metrics, error) {
	mt := &metrics{}

	var err error
	mt.shots, err = m.Int64Counter(
		"combat.shots",
		metric.WithDescription("Rounds fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	mt.reloads, err = m.Int64Counter(
		"combat.reloads",
		metric.WithDescription("Completed reloads"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reloads counter: %w", err)
	}

	mt.hits, err = m.Int64Counter(
		"combat.hits",
		metric.WithDescription("Hits reported by the physics collaborator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	mt.kills, err = m.Int64Counter(
		"combat.kills",
		metric.WithDescription("Lethal hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	mt.projectiles, err = m.Int64ObservableGauge(
		"combat.projectiles.live",
		metric.WithDescription("Projectiles currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating projectiles gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(mt.projectiles, mt.live.Load())
			return nil
		},
		mt.projectiles,
	)
	if err != nil {
		return nil, fmt.Errorf("registering projectiles callback: %w", err)
	}

	return mt, nil
}

func weaponAttr(t string) metric.AddOption {
	return metric.WithAttributes(attribute.String("weapon.type", t))
}
