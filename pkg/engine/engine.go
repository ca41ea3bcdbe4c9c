// Package engine wires the Seed Collector, Expansion, Filter & Rank, and
// Smoother stages together and publishes the result, matching the
// teacher's orchestration shape of one function per stage boundary
// driven from a single entry point.
package engine

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/expand"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/filter"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/genre"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/publish"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/seeds"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/smooth"
)

// ExitError carries the process exit code a failure should map to,
// matching the original harvester's exit-code contract: 2 for bad
// input/credentials, 3 for connection/section failure, 5 for
// publish/empty-result failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Engine runs a single playlist generation.
type Engine struct {
	client      library.Client
	collections library.CollectionResolver
	caches      *library.RunCaches
	mapper      *genre.Mapper
	rnd         *rng.Source
	log         *zap.Logger
	dryRun      bool
}

// New builds an Engine for one run.
func New(client library.Client, collections library.CollectionResolver, mapper *genre.Mapper, rnd *rng.Source, log *zap.Logger, dryRun bool) *Engine {
	return &Engine{
		client:      client,
		collections: collections,
		caches:      library.NewRunCaches(),
		mapper:      mapper,
		rnd:         rnd,
		log:         log,
		dryRun:      dryRun,
	}
}

// Run executes the full pipeline for one preset against the configured
// Library Server: resolve section, collect seeds, expand, blend, filter
// and rank, cap and select, smooth, publish.
func (e *Engine) Run(ctx context.Context, preset models.Preset, title string) error {
	if err := e.client.ResolveMusicSection(ctx); err != nil {
		return &ExitError{Code: 3, Err: fmt.Errorf("resolve music section: %w", err)}
	}
	e.log.Info("[bar] 10% resolved music library section")

	now := time.Now()

	seedResult, err := seeds.Collect(ctx, e.client, e.collections, preset, e.rnd, now)
	if err != nil {
		return &ExitError{Code: 3, Err: fmt.Errorf("collect seeds: %w", err)}
	}
	if len(seedResult.SeedTracks) == 0 {
		return &ExitError{Code: 2, Err: fmt.Errorf("no seed tracks resolved for this preset")}
	}
	e.log.Info("[bar] 25% seeds collected", zap.Int("seed_count", len(seedResult.SeedTracks)))

	pool, err := expand.Dispatch(ctx, e.client, e.caches, seedResult.SeedTracks, preset, e.rnd)
	if err != nil {
		return &ExitError{Code: 3, Err: fmt.Errorf("expand candidates: %w", err)}
	}

	skipBlend := preset.SeedMode == models.SeedModeStrictCollection ||
		preset.SeedMode == models.SeedModeSonicHistory ||
		preset.SeedMode == models.SeedModeHistory
	if !skipBlend {
		historyWindow, err := seeds.CollectHistory(ctx, e.client, preset, now)
		if err == nil {
			var historyTracks []models.Track
			for _, id := range historyWindow.SeedTrackIDs {
				t, err := e.client.FetchTrack(ctx, id)
				if err != nil {
					continue
				}
				historyTracks = append(historyTracks, t)
			}
			pool = expand.HistoricalBlend(pool, historyTracks, preset)
		}
	}
	e.log.Info("[bar] 50% candidate pool expanded", zap.Int("pool_size", len(pool)))

	checker := filter.NewChecker(e.client, e.caches, e.mapper, preset, seedResult.ExcludedKeys)
	trackGenres := make(map[string][]string, len(pool))
	var validated []filter.Scored
	for i, t := range pool {
		album := e.lookupAlbum(ctx, t.AlbumID)
		reason, err := checker.Check(ctx, t, album)
		if err != nil {
			e.log.Warn("skipping candidate after fetch error", zap.Error(err), zap.String("track_id", t.ID))
			continue
		}
		if reason != filter.Accepted {
			continue
		}
		genres := append(append([]string{}, t.Genres...), album.Genres...)
		if e.mapper != nil {
			genres = e.mapper.SimplifyAll(genres)
		}
		trackGenres[t.ID] = genres
		validated = append(validated, filter.Scored{Track: t, Rank: i, Total: len(pool)})
	}
	e.log.Info("[bar] 70% validated", zap.Int("surviving", len(validated)))

	var ordered []models.Track
	if preset.SeedMode == models.SeedModeSonicJourney {
		// Sonic Journey's order IS the logic; Smart Sort would scramble
		// the path it took to get from seed to seed, so caps are still
		// enforced but walked in the order the pathfinder produced.
		ordered = make([]models.Track, 0, len(validated))
		for _, s := range validated {
			ordered = append(ordered, s.Track)
		}
	} else {
		ordered = filter.Rank(validated, preset, e.rnd, now)
	}
	final := filter.Select(ordered, trackGenres, preset)
	e.log.Info("[bar] 85% ranked and capped", zap.Int("selected", len(final)))

	if preset.SonicSmoothing && preset.SeedMode != models.SeedModeSonicJourney {
		final = smooth.Gradient(ctx, e.client, final, e.rnd)
		e.log.Info("[bar] 90% smoothed", zap.Int("final_count", len(final)))
	}

	if len(final) == 0 {
		return &ExitError{Code: 5, Err: fmt.Errorf("final playlist is empty")}
	}

	if e.dryRun {
		e.log.Info("[bar] 100% dry run complete, skipping publish", zap.Int("final_count", len(final)))
		return nil
	}

	opts := publish.Options{
		Title:     resolveTitle(title, preset, now),
		Summary:   publish.Summary(now, preset.SeedMode, len(final)),
		TempDir:   os.TempDir(),
		CoverFill: coverFillFor(preset.SeedMode),
		Now:       now,
	}
	if err := publish.Run(ctx, e.client, final, opts, e.log); err != nil {
		return &ExitError{Code: 5, Err: fmt.Errorf("publish: %w", err)}
	}
	e.log.Info("[bar] 100% published", zap.String("playlist", opts.Title))

	return nil
}

func (e *Engine) lookupAlbum(ctx context.Context, albumID string) models.Album {
	if albumID == "" {
		return models.Album{}
	}
	if a, ok := e.caches.GetAlbum(albumID); ok {
		return a
	}
	a, err := e.client.FetchAlbum(ctx, albumID)
	if err != nil {
		return models.Album{ID: albumID}
	}
	e.caches.PutAlbum(albumID, a)
	return a
}

// coverFillFor gives each seed mode a distinct, stable background color
// so covers are visually distinguishable across presets at a glance.
func coverFillFor(mode models.SeedMode) color.RGBA {
	var hash uint32
	for _, r := range mode {
		hash = hash*31 + uint32(r)
	}
	if hash == 0 {
		hash = 0x5b7fae
	}
	return color.RGBA{
		R: uint8(hash >> 16),
		G: uint8(hash >> 8),
		B: uint8(hash),
		A: 255,
	}
}

func resolveTitle(custom string, preset models.Preset, now time.Time) string {
	if custom != "" {
		return custom
	}
	if preset.CustomTitle != "" {
		return preset.CustomTitle
	}
	return fmt.Sprintf("Playlist Creator • %s (%s)", titleCase(string(preset.SeedMode)), now.Format("06-01-02"))
}

// titleCase mirrors Python's str.title(): every run of letters gets its
// first rune upper-cased, everything else (digits, underscores, spaces)
// is left untouched and still counts as a word boundary. SeedMode values
// like "sonic_album_mix" come out as "Sonic_Album_Mix".
func titleCase(s string) string {
	out := []rune(s)
	prevIsLetter := false
	for i, r := range out {
		isLetter := unicode.IsLetter(r)
		if isLetter && !prevIsLetter {
			out[i] = unicode.ToUpper(r)
		} else if isLetter {
			out[i] = unicode.ToLower(r)
		}
		prevIsLetter = isLetter
	}
	return string(out)
}
