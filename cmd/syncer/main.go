// cmd/syncer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gewnthar/phonemodels/config"
	"github.com/gewnthar/phonemodels/logging"
	"github.com/gewnthar/phonemodels/models"
	"github.com/gewnthar/phonemodels/scraper"
	"github.com/gewnthar/phonemodels/services"
	"github.com/gewnthar/phonemodels/state"
	"github.com/gewnthar/phonemodels/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (defaults to ./config.yaml or ./config/config.yaml when present)")
	envFile := flag.String("env", ".env", "Optional dotenv file with R2_* credentials")
	csvURL := flag.String("url", "", "CSV URL (overrides config)")
	flag.Parse()

	if *configPath == "" {
		*configPath = config.FindConfigFile("config.yaml", "config/config.yaml")
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Setup("info").Fatalf("❌ Error loading configuration: %v", err)
	}
	log := logging.Setup(cfg.Logging.Level)
	if err := cfg.ApplyEnv(*envFile); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *csvURL != "" {
		cfg.Syncer.CSVURL = *csvURL
	}

	syncer := &services.Syncer{
		Fetcher:      scraper.NewFetcher(cfg.Syncer.FetchTimeout),
		CSVURL:       cfg.Syncer.CSVURL,
		ObjectKey:    cfg.Syncer.ObjectKey,
		ContentType:  cfg.Syncer.ContentType,
		CacheControl: cfg.Syncer.CacheControl,
	}

	store, err := storage.NewR2Store(cfg.Storage)
	switch {
	case errors.Is(err, config.ErrIncompleteStorageConfig):
		log.Warnf("⏭ %v, nothing will be uploaded", err)
	case err != nil:
		log.Errorf("❌ %v", err)
		os.Exit(1)
	default:
		syncer.Store = store
	}

	stateStore := state.NewFileStore(cfg.Syncer.FingerprintFile)
	result, err := run(context.Background(), syncer, stateStore)
	if err != nil {
		log.Errorf("❌ Sync failed: %v", err)
		os.Exit(1)
	}

	if result.Status == models.SyncPublished {
		tz := time.FixedZone(fmt.Sprintf("UTC%+d", cfg.Syncer.ReportUTCOffsetHours), cfg.Syncer.ReportUTCOffsetHours*3600)
		log.Infof("✨ Sync complete! Updated at: %s", result.PublishedAt.In(tz).Format("2006-01-02 15:04:05"))
	}
}

// run loads the last state, syncs once and saves the new state only after a publish.
func run(ctx context.Context, syncer *services.Syncer, stateStore *state.FileStore) (models.SyncResult, error) {
	last, err := stateStore.Load()
	if err != nil {
		return models.SyncResult{}, err
	}

	result, err := syncer.Sync(ctx, last)
	if err != nil {
		return result, err
	}

	if result.Status == models.SyncPublished {
		if err := stateStore.Save(result.State); err != nil {
			return result, fmt.Errorf("upload succeeded but %w", err)
		}
	}
	return result, nil
}
