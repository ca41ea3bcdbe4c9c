package seeds

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

const (
	genreTrackSearchLimit  = 1000
	genreTrackCapPerGenre  = 100
	genreAlbumSearchLimit  = 500
	genreAlbumCapPerGenre  = 50
	genreAlbumTrackCap     = 50
)

// CollectGenreTracks pulls seed tracks per genre tag: a direct track
// search first (shuffled, capped at 100/genre), falling back to an album
// search (shuffled, capped at 50 albums, then 50 tracks total) when the
// track search comes back empty — some libraries only tag genre at the
// album level.
func CollectGenreTracks(ctx context.Context, client library.Client, genres []string, rnd *rng.Source) ([]models.Track, error) {
	var out []models.Track

	for _, g := range genres {
		tracks, err := client.SearchTracksByGenre(ctx, g, genreTrackSearchLimit)
		if err != nil {
			continue
		}
		if len(tracks) > 0 {
			shuffled := shuffleTracks(tracks, rnd)
			if len(shuffled) > genreTrackCapPerGenre {
				shuffled = shuffled[:genreTrackCapPerGenre]
			}
			out = append(out, shuffled...)
			continue
		}

		albums, err := client.SearchAlbumsByGenre(ctx, g, genreAlbumSearchLimit)
		if err != nil || len(albums) == 0 {
			continue
		}
		shuffledAlbums := shuffleAlbums(albums, rnd)
		if len(shuffledAlbums) > genreAlbumCapPerGenre {
			shuffledAlbums = shuffledAlbums[:genreAlbumCapPerGenre]
		}

		var fromAlbums []models.Track
		for _, a := range shuffledAlbums {
			albumTracks, err := client.ListTracksByAlbum(ctx, a.ID)
			if err != nil {
				continue
			}
			fromAlbums = append(fromAlbums, albumTracks...)
			if len(fromAlbums) >= genreAlbumTrackCap {
				break
			}
		}
		if len(fromAlbums) > genreAlbumTrackCap {
			fromAlbums = fromAlbums[:genreAlbumTrackCap]
		}
		out = append(out, fromAlbums...)
	}

	return out, nil
}

func shuffleTracks(tracks []models.Track, rnd *rng.Source) []models.Track {
	out := make([]models.Track, len(tracks))
	copy(out, tracks)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func shuffleAlbums(albums []models.Album, rnd *rng.Source) []models.Album {
	out := make([]models.Album, len(albums))
	copy(out, albums)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
