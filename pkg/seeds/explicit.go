package seeds

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// CollectExplicit resolves the explicitly-named seed sources (track keys,
// playlists, collections) concurrently and concatenates the results in
// source order: tracks, then playlists, then collections.
func CollectExplicit(ctx context.Context, client library.Client, collections library.CollectionResolver, preset models.Preset) ([]models.Track, error) {
	var fromKeys, fromPlaylists, fromCollections []models.Track

	g, gctx := errgroup.WithContext(ctx)

	if len(preset.SeedTrackKeys) > 0 {
		g.Go(func() error {
			out := make([]models.Track, 0, len(preset.SeedTrackKeys))
			for _, id := range preset.SeedTrackKeys {
				t, err := client.FetchTrack(gctx, id)
				if err != nil {
					continue
				}
				out = append(out, t)
			}
			fromKeys = out
			return nil
		})
	}

	if len(preset.SeedPlaylistNames) > 0 {
		g.Go(func() error {
			var out []models.Track
			for _, name := range preset.SeedPlaylistNames {
				items, err := client.PlaylistItems(gctx, name)
				if err != nil {
					continue
				}
				out = append(out, items...)
			}
			fromPlaylists = out
			return nil
		})
	}

	if len(preset.SeedCollectionNames) > 0 && collections != nil {
		g.Go(func() error {
			var out []models.Track
			for _, name := range preset.SeedCollectionNames {
				items, err := collections.ResolveCollectionTracks(gctx, name)
				if err != nil {
					continue
				}
				out = append(out, items...)
			}
			fromCollections = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]models.Track, 0, len(fromKeys)+len(fromPlaylists)+len(fromCollections))
	all = append(all, fromKeys...)
	all = append(all, fromPlaylists...)
	all = append(all, fromCollections...)
	return DedupByID(all), nil
}

// DedupByID removes repeats by track id, preserving first-seen order.
func DedupByID(tracks []models.Track) []models.Track {
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
