package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/config"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/engine"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/genre"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/preset"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

func main() {
	presetName := flag.String("preset", "", "named preset under PRESET_STORE_PATH (omit to read JSON from stdin)")
	dryRun := flag.Bool("dry-run", false, "build the playlist without publishing it")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(2)
	}
	defer log.Sync()

	os.Exit(run(*presetName, *dryRun, log))
}

func run(presetName string, dryRun bool, log *zap.Logger) int {
	cfg, err := config.New()
	if err != nil {
		log.Error("failed to load configuration", zap.Error(err))
		return 2
	}
	if cfg.DryRun {
		dryRun = true
	}

	payload, src, err := preset.Load(cfg, presetName, os.Stdin)
	if err != nil {
		log.Error("failed to load preset", zap.Error(err))
		return 2
	}
	log.Info("preset loaded", zap.String("source", string(src)), zap.String("seed_mode", string(payload.Playlist.SeedMode)))

	seed := cfg.RandomSeed
	if payload.Playlist.RandomSeed != nil {
		seed = *payload.Playlist.RandomSeed
	}
	var rnd *rng.Source
	if seed != 0 {
		rnd = rng.New(seed)
	} else {
		rnd = rng.NewFromTime()
	}

	client := library.NewRestyClient(library.Options{
		BaseURL:                 payload.Library.URL,
		Token:                   payload.Library.Token,
		MusicLibrary:            payload.Library.MusicLibrary,
		Timeout:                 cfg.HTTPTimeout,
		RateLimitPerSecond:      cfg.RateLimitPerSecond,
		RateLimitBurst:          cfg.RateLimitBurst,
		BreakerFailureThreshold: cfg.BreakerFailureCount,
		BreakerOpenTimeout:      cfg.BreakerOpenTimeout,
	}, log)

	var mapper *genre.Mapper
	if payload.Playlist.GenreMappingOverridesEnabled && cfg.MongoURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := genre.NewStore(ctx, cfg.MongoURL, cfg.MongoDatabase, log)
		if err != nil {
			log.Warn("failed to connect genre mapping store, continuing without overrides", zap.Error(err))
		} else {
			mappings, err := store.LoadMappings(ctx)
			if err != nil {
				log.Warn("failed to load genre mappings, continuing without overrides", zap.Error(err))
			} else {
				mapper = genre.NewMapper(mappings, nil, log)
			}
		}
	}

	eng := engine.New(client, client, mapper, rnd, log, dryRun)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*4)
	defer cancel()

	if err := eng.Run(ctx, payload.Playlist, payload.Playlist.CustomTitle); err != nil {
		var exitErr *engine.ExitError
		if errors.As(err, &exitErr) {
			log.Error("run failed", zap.Error(err), zap.Int("exit_code", exitErr.Code))
			return exitErr.Code
		}
		log.Error("run failed", zap.Error(err))
		return 1
	}

	return 0
}
