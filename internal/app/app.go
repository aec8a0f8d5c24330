package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"billfold/internal/config"
	"billfold/internal/ledger"
	"billfold/internal/remote"
	"billfold/internal/service"
	"billfold/internal/store"
	"billfold/internal/syncmode"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Mode    *syncmode.Controller
	Gateway remote.Gateway
}

// NewApp initializes config, database, remote gateway and core services,
// then returns the App entity. The returned cleanup closes the database.
func NewApp(cfg *config.Config) (*App, func(), error) {
	dbPathRaw := cfg.Database.Path

	appDir, err := getAppDataDir()
	if err != nil {
		return nil, nil, err
	}
	if dbPathRaw == "" {
		dbPathRaw = filepath.Join(appDir, "billfold.db")
	}

	dbStore, err := store.NewStore(dbPathRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	led := ledger.New(dbStore)

	var gateway remote.Gateway
	if cfg.Remote.BaseURL != "" {
		gateway = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIToken, filepath.Join(appDir, "images"))
	}

	mode := syncmode.New()
	mode.SetAuthenticated(cfg.Authenticated())
	mode.SetPremium(cfg.Remote.Tier == syncmode.TierPremium)
	mode.OnOnline(func() {
		log.Printf("online mode enabled; pending records will reconcile on the next sync")
	})

	// connectivity probe at startup; offline is a normal state, not an error
	if gateway != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		mode.SetConnected(gateway.Ping(ctx) == nil)
		cancel()
	}

	svc := service.New(dbStore, led, gateway, mode, cfg.Remote.UserID)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Mode:    mode,
		Gateway: gateway,
	}, cleanup, nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".billfold"), nil
	}

	return filepath.Join(configDir, "billfold"), nil
}
