package seeds

import (
	"context"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// Result is everything downstream expansion needs: the resolved seed
// tracks (deduplicated, order-preserved) and the excluded-keys set the
// static filter must honor regardless of seed mode.
type Result struct {
	SeedTracks   []models.Track
	ExcludedKeys map[string]bool
}

// Collect runs the full seed-collection pipeline in the original's exact
// order: history first (to establish excluded keys even when history
// itself isn't a seed source), then explicit track/playlist/collection
// seeds, then Smart-Seed artist expansion, then genre seeds (only kept
// for genre mode) and history seeds (only kept for history mode). When
// nothing else produced a seed and the mode isn't history or
// strict_collection, SeedFallbackMode picks the fallback: "genre" runs
// the genre harvester (on "Rock" when no genre seeds are set), anything
// else reuses the history seeds.
func Collect(ctx context.Context, client library.Client, collections library.CollectionResolver, preset models.Preset, rnd *rng.Source, now time.Time) (Result, error) {
	history, err := CollectHistory(ctx, client, preset, now)
	if err != nil {
		return Result{}, err
	}

	var seedTracks []models.Track

	explicit, err := CollectExplicit(ctx, client, collections, preset)
	if err != nil {
		return Result{}, err
	}
	seedTracks = append(seedTracks, explicit...)

	if len(preset.SeedArtistNames) > 0 {
		artists, err := CollectSeedArtists(ctx, client, preset.SeedArtistNames)
		if err == nil {
			expanded, err := ExpandArtists(ctx, client, artists, preset.SeedMode, preset.DeepDiveTarget, preset.ExploitWeight, rnd)
			if err == nil {
				seedTracks = append(seedTracks, expanded...)
			}
		}
	}

	if preset.SeedMode == models.SeedModeGenre && len(preset.GenreSeeds) > 0 {
		genreTracks, err := CollectGenreTracks(ctx, client, preset.GenreSeeds, rnd)
		if err == nil {
			seedTracks = append(seedTracks, genreTracks...)
		}
	}

	if preset.SeedMode == models.SeedModeHistory {
		for _, id := range history.SeedTrackIDs {
			t, err := client.FetchTrack(ctx, id)
			if err != nil {
				continue
			}
			seedTracks = append(seedTracks, t)
		}
	}

	seedTracks = DedupByID(seedTracks)

	if len(seedTracks) == 0 && preset.SeedMode != models.SeedModeHistory && preset.SeedMode != models.SeedModeStrictCollection {
		switch preset.SeedFallbackMode {
		case "genre":
			fallbackGenres := preset.GenreSeeds
			if len(fallbackGenres) == 0 {
				fallbackGenres = []string{"Rock"}
			}
			genreTracks, err := CollectGenreTracks(ctx, client, fallbackGenres, rnd)
			if err == nil {
				seedTracks = append(seedTracks, genreTracks...)
			}
		default:
			for _, id := range history.SeedTrackIDs {
				t, err := client.FetchTrack(ctx, id)
				if err != nil {
					continue
				}
				seedTracks = append(seedTracks, t)
			}
		}
		seedTracks = DedupByID(seedTracks)
	}

	return Result{SeedTracks: seedTracks, ExcludedKeys: history.ExcludedKeys}, nil
}
