package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-fps/internal/audio"
	"github.com/pixil98/go-fps/internal/catalog"
	"github.com/pixil98/go-fps/internal/combat"
	"github.com/pixil98/go-fps/internal/console"
	"github.com/pixil98/go-fps/internal/driver"
	"github.com/pixil98/go-fps/internal/game"
	"github.com/pixil98/go-fps/internal/listener"
	"github.com/pixil98/go-fps/internal/messaging"
	"github.com/pixil98/go-fps/internal/persistence"
	"github.com/pixil98/go-fps/internal/terminal"
	"github.com/pixil98/go-service/service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	templates := catalog.Templates{}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	// Load saved progress into a fresh store
	store := game.NewStore(templates)
	storer, err := cfg.Storage.BuildStorer()
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}
	res := persistence.Hydrate(store, storer, cfg.Storage.key(), templates)
	slog.Info("loaded saved state", "found", res.Found, "corrupted", res.Corrupted)

	saver := cfg.Storage.BuildSaver(store, storer)
	workers := service.WorkerList{
		"saver": &saverWorker{saver: saver, detach: saver.Attach()},
	}

	camera := terminal.NewPlayerCamera(store)

	var sound game.SoundPlayer = game.NopSoundPlayer{}
	if cfg.Audio.Enabled {
		synth := cfg.Audio.buildSynth(audio.WithListener(camera.Position))
		sound = synth
		workers["audio"] = &audioWorker{synth: synth, store: store}
	}

	engine, err := combat.NewEngine(store, sound, camera)
	if err != nil {
		return nil, fmt.Errorf("creating combat engine: %w", err)
	}

	// Setup the simulation driver
	workers["driver"] = driver.NewSimDriver(
		[]driver.Ticker{engine, saver},
		driver.WithTickLength(cfg.tickLength()),
		driver.WithBoundary(cfg.Recovery.buildBoundary(store)),
	)

	var consoleOpts []console.ConsoleOpt
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		bridge, err := cfg.Notifications.buildBridge(ns)
		if err != nil {
			return nil, fmt.Errorf("creating event bridge: %w", err)
		}
		workers["nats"] = ns
		workers["notifications"] = &bridgeWorker{ns: ns, bridge: bridge, store: store}
		consoleOpts = append(consoleOpts, console.WithEvents(ns, cfg.Notifications.prefix()+".>"))
	}

	// Create console listeners
	con := console.NewConsole(store, engine.Input(), consoleOpts...)
	cm := listener.NewConnectionManager(con, listener.WithMaxSessions(cfg.Consoles.MaxSessions))
	listeners := make(service.WorkerList, len(cfg.Consoles.Listeners))
	for i, l := range cfg.Consoles.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}
	workers["listeners"] = &listeners

	if cfg.Terminal.Enabled {
		workers["terminal"] = cfg.Terminal.buildFrontend(store, engine)
	}

	return workers, nil
}

// saverWorker writes anything still pending on shutdown.
type saverWorker struct {
	saver  *persistence.Saver
	detach func()
}

func (w *saverWorker) Start(ctx context.Context) error {
	defer w.detach()

	<-ctx.Done()
	if err := w.saver.Flush(); err != nil {
		return fmt.Errorf("flushing saved state: %w", err)
	}
	return nil
}

type audioWorker struct {
	synth *audio.Synth
	store *game.Store
}

func (w *audioWorker) Start(ctx context.Context) error {
	if err := w.synth.Start(); err != nil {
		slog.WarnContext(ctx, "audio unavailable, continuing without sound", "error", err)
		w.synth.SetMuted(true)
		<-ctx.Done()
		return nil
	}
	detach := w.synth.Attach(w.store)
	defer w.synth.Close()
	defer detach()

	<-ctx.Done()
	return nil
}

// bridgeWorker starts publishing store events once the bus accepts them.
type bridgeWorker struct {
	ns     *messaging.NatsServer
	bridge *messaging.EventBridge
	store  *game.Store
}

func (w *bridgeWorker) Start(ctx context.Context) error {
	select {
	case <-w.ns.Ready():
	case <-ctx.Done():
		return nil
	}

	detach := w.bridge.Attach(w.store)
	defer detach()

	slog.InfoContext(ctx, "publishing game events")
	<-ctx.Done()
	return nil
}
