package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/staffstore/internal/config"
	"github.com/UnknownOlympus/staffstore/internal/metrics"
	"github.com/UnknownOlympus/staffstore/internal/services/employees"
	"github.com/UnknownOlympus/staffstore/internal/storage"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds everything a command needs once configuration has been loaded.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	registry  *prometheus.Registry
	store     *storage.Store
	directory *employees.Directory
}

func newApp(ctx context.Context) (*app, error) {
	// a local .env may supply CONFIG_PATH and STAFFSTORE_* overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("config path is empty: set CONFIG_PATH")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	store, err := storage.Open(ctx, cfg, appMetrics)
	if err != nil {
		return nil, err
	}

	// in-memory SQLite starts empty every run
	if cfg.Storage.Driver == config.DriverSQLite {
		if err = store.Migrate(); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to prepare schema: %w", err)
		}
	}

	return &app{
		cfg:       cfg,
		log:       logger,
		registry:  reg,
		store:     store,
		directory: employees.NewDirectory(logger, store.Employees),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}
