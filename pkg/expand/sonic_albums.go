package expand

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

const tracksPerSimilarAlbum = 6

// ExpandViaSonicAlbums walks each seed track's album and pulls its sonic
// neighbors, taking up to tracksPerSimilarAlbum tracks from each
// neighboring album.
func ExpandViaSonicAlbums(ctx context.Context, client library.Client, caches *library.RunCaches, seeds []models.Track, sonicLimit int) ([]models.Track, error) {
	limit := boostedLimit(sonicLimit)

	seenAlbums := make(map[string]bool)
	var out []models.Track

	for _, seed := range seeds {
		if seed.AlbumID == "" || seenAlbums[seed.AlbumID] {
			continue
		}
		seenAlbums[seed.AlbumID] = true

		similarAlbums, err := client.SonicSimilarAlbums(ctx, seed.AlbumID, limit)
		if err != nil {
			continue
		}

		for _, album := range similarAlbums {
			caches.PutAlbum(album.ID, album)
			tracks, err := client.ListTracksByAlbum(ctx, album.ID)
			if err != nil {
				continue
			}
			if len(tracks) > tracksPerSimilarAlbum {
				tracks = tracks[:tracksPerSimilarAlbum]
			}
			out = append(out, tracks...)
		}
	}

	return out, nil
}
