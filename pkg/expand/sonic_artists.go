package expand

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

const tracksPerSimilarArtist = 25

// ExpandViaSonicArtists walks each seed track's artist and pulls its
// sonic neighbors, taking up to tracksPerSimilarArtist tracks from each.
func ExpandViaSonicArtists(ctx context.Context, client library.Client, caches *library.RunCaches, seeds []models.Track, sonicLimit int) ([]models.Track, error) {
	limit := boostedLimit(sonicLimit)

	seenArtists := make(map[string]bool)
	var out []models.Track

	for _, seed := range seeds {
		if seed.ArtistID == "" || seenArtists[seed.ArtistID] {
			continue
		}
		seenArtists[seed.ArtistID] = true

		similarArtists, err := client.SonicSimilarArtists(ctx, seed.ArtistID, limit)
		if err != nil {
			continue
		}

		for _, artist := range similarArtists {
			caches.PutArtistMeta(artist.ID, library.ArtistMeta{Collections: artist.Collections, Genres: artist.Genres})
			tracks, err := client.ListTracksByArtist(ctx, artist.ID)
			if err != nil {
				continue
			}
			if len(tracks) > tracksPerSimilarArtist {
				tracks = tracks[:tracksPerSimilarArtist]
			}
			out = append(out, tracks...)
		}
	}

	return out, nil
}
