// Package expand implements the expansion strategies that turn a small
// seed set into a larger candidate pool, dispatched by a Preset's
// SeedMode as a tagged union rather than a class hierarchy.
package expand

import (
	"context"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// boostedLimit is the over-fetch factor every sonic-similarity call uses
// so post-filtering still leaves enough candidates: never less than 40,
// otherwise double the preset's sonic_similar_limit.
func boostedLimit(sonicLimit int) int {
	if sonicLimit*2 > 40 {
		return sonicLimit * 2
	}
	return 40
}

// Dispatch runs the expansion strategy (or strategies) implied by
// preset.SeedMode against the resolved seed tracks, mirroring the
// original harvester's exact branch structure: strict_collection and
// sonic_history are each handled first and return their own pool
// directly (nothing below them runs for those modes), then an if/elif
// chain picks exactly one of track_sonic / album_echoes / sonic_journey /
// any "sonic" mode (album mix and/or artist mix based on substring
// match), falling back to the seed tracks verbatim for history/genre
// modes with nothing else to expand from.
func Dispatch(ctx context.Context, client library.Client, caches *library.RunCaches, seedTracks []models.Track, preset models.Preset, rnd *rng.Source) ([]models.Track, error) {
	var pool []models.Track

	if preset.SeedMode == models.SeedModeStrictCollection {
		return ExpandStrictCollection(ctx, seedTracks, preset, rnd)
	}

	if preset.SeedMode == models.SeedModeSonicHistory {
		return ExpandSonicHistory(ctx, client, seedTracks, preset, rnd)
	}

	switch {
	case preset.SeedMode == models.SeedModeTrackSonic:
		p, err := ExpandViaSonicTracks(ctx, client, seedTracks, preset.SonicSimilarLimit, preset.MaxTracks)
		if err != nil {
			return nil, err
		}
		pool = p

	case preset.SeedMode == models.SeedModeAlbumEchoes:
		p, err := ExpandAlbumEchoes(ctx, client, caches, seedTracks, preset.MaxTracks, preset.SonicSimilarLimit)
		if err != nil {
			return nil, err
		}
		pool = p

	case preset.SeedMode == models.SeedModeSonicJourney:
		p, err := ExpandSonicJourney(ctx, client, seedTracks, preset.MaxTracks)
		if err != nil {
			return nil, err
		}
		pool = p

	case strings.Contains(string(preset.SeedMode), "sonic"):
		var albumTracks, artistTracks []models.Track
		if preset.SeedMode == models.SeedModeSonicAlbumMix || preset.SeedMode == models.SeedModeSonicCombo {
			var err error
			albumTracks, err = ExpandViaSonicAlbums(ctx, client, caches, seedTracks, preset.SonicSimilarLimit)
			if err != nil {
				return nil, err
			}
		}
		if preset.SeedMode == models.SeedModeSonicArtistMix || preset.SeedMode == models.SeedModeSonicCombo {
			var err error
			artistTracks, err = ExpandViaSonicArtists(ctx, client, caches, seedTracks, preset.SonicSimilarLimit)
			if err != nil {
				return nil, err
			}
		}
		pool = append(pool, albumTracks...)
		pool = append(pool, artistTracks...)

	default:
		pool = seedTracks
	}

	return dedupByID(pool), nil
}

func dedupByID(tracks []models.Track) []models.Track {
	seen := make(map[string]bool, len(tracks))
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
