package filter

import (
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// Select walks a ranked pool best-first, applying the per-artist and
// per-album caps and — when GenreStrict is set — an off-genre quota: at
// most floor(MaxTracks * AllowOffGenreFraction) selected tracks may miss
// every genre in GenreSeeds. Walking stops once MaxTracks is reached or
// the pool is exhausted.
func Select(ranked []models.Track, trackGenres map[string][]string, preset models.Preset) []models.Track {
	if preset.MaxTracks <= 0 {
		return nil
	}

	offGenreBudget := -1
	if preset.GenreStrict && len(preset.GenreSeeds) > 0 {
		offGenreBudget = int(float64(preset.MaxTracks) * preset.AllowOffGenreFraction)
	}

	wantedGenres := make(map[string]bool, len(preset.GenreSeeds))
	for _, g := range preset.GenreSeeds {
		wantedGenres[normalize(g)] = true
	}

	artistCount := make(map[string]int)
	albumCount := make(map[string]int)
	offGenreUsed := 0

	selected := make([]models.Track, 0, preset.MaxTracks)
	for _, t := range ranked {
		if len(selected) >= preset.MaxTracks {
			break
		}

		if preset.MaxTracksPerArtist > 0 && artistCount[t.ArtistID] >= preset.MaxTracksPerArtist {
			continue
		}
		if preset.MaxTracksPerAlbum > 0 && albumCount[t.AlbumID] >= preset.MaxTracksPerAlbum {
			continue
		}

		if offGenreBudget >= 0 {
			onGenre := matchesAny(wantedGenres, trackGenres[t.ID])
			if !onGenre {
				if offGenreUsed >= offGenreBudget {
					continue
				}
				offGenreUsed++
			}
		}

		selected = append(selected, t)
		artistCount[t.ArtistID]++
		albumCount[t.AlbumID]++
	}

	return selected
}

func matchesAny(wanted map[string]bool, have []string) bool {
	for _, h := range have {
		if wanted[normalize(h)] {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
