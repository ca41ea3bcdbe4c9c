package expand

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// ExpandAlbumEchoes ("Deep Dive") spreads maxTracks evenly across the
// seed albums' sonic neighborhoods (fair share), then backfills any
// shortfall from whichever seed albums actually produced tracks.
func ExpandAlbumEchoes(ctx context.Context, client library.Client, caches *library.RunCaches, seeds []models.Track, maxTracks, sonicLimit int) ([]models.Track, error) {
	activeKeys := uniqueAlbumIDs(seeds)
	if len(activeKeys) == 0 {
		return nil, nil
	}

	limit := boostedLimit(sonicLimit)
	baseTarget := maxTracks / len(activeKeys)
	if baseTarget < 1 {
		baseTarget = 1
	}

	pool := make(map[string][]models.Track, len(activeKeys))
	var survivors []string
	seen := make(map[string]bool)
	var out []models.Track

	for _, albumID := range activeKeys {
		similarAlbums, err := client.SonicSimilarAlbums(ctx, albumID, limit)
		if err != nil {
			continue
		}

		var fromAlbum []models.Track
		for _, album := range similarAlbums {
			caches.PutAlbum(album.ID, album)
			tracks, err := client.ListTracksByAlbum(ctx, album.ID)
			if err != nil {
				continue
			}
			fromAlbum = append(fromAlbum, tracks...)
		}
		pool[albumID] = fromAlbum

		taken := 0
		for _, t := range fromAlbum {
			if taken >= baseTarget {
				break
			}
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
			taken++
		}
		if taken > 0 {
			survivors = append(survivors, albumID)
		}
	}

	if len(out) < maxTracks && len(survivors) > 0 {
		needed := maxTracks - len(out)
		perSurvivor := needed/len(survivors) + 1

		for _, albumID := range survivors {
			taken := 0
			for _, t := range pool[albumID] {
				if taken >= perSurvivor || len(out) >= maxTracks {
					break
				}
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				out = append(out, t)
				taken++
			}
		}
	}

	return out, nil
}

func uniqueAlbumIDs(tracks []models.Track) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tracks {
		if t.AlbumID == "" || seen[t.AlbumID] {
			continue
		}
		seen[t.AlbumID] = true
		out = append(out, t.AlbumID)
	}
	return out
}
