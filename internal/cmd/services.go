package main

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/bkmar1192/FoundryLite/internal/gateway"
	"github.com/bkmar1192/FoundryLite/internal/orchestrator"
	"github.com/bkmar1192/FoundryLite/internal/storage"
	"github.com/bkmar1192/FoundryLite/internal/watch"
)

type Services struct {
	Orchestrator *orchestrator.Orchestrator
	Gateway      *gateway.Service
	Watcher      *watch.Watcher
}

func setupServices(cfg Config) (*Services, error) {
	// Wire up dependency chain:
	// document store → orchestrator → gateway, with the watcher feeding
	// file changes back into the orchestrator.

	store, err := storage.New(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	// The orchestrator needs the hub before the gateway needs the
	// orchestrator, so the hub is created first and shared.
	hub := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	orch := orchestrator.New(store, hub, clockwork.NewRealClock(), cfg.ImagePath(), cfg.CombatPath())
	gw := gateway.NewServiceWithHub(hub, orch)

	watcher, err := watch.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.WatchFile(cfg.ImagePath(), orch.OnImageChange); err != nil {
		return nil, fmt.Errorf("failed to watch scene image: %w", err)
	}
	if err := watcher.WatchFile(cfg.CombatPath(), orch.OnCombatChange); err != nil {
		return nil, fmt.Errorf("failed to watch combat file: %w", err)
	}

	return &Services{
		Orchestrator: orch,
		Gateway:      gw,
		Watcher:      watcher,
	}, nil
}
