package seeds

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// ExpandArtists turns a short list of liked artists into a larger seed
// track set: for album_echoes mode this pulls deepDiveTarget seeds, every
// other mode pulls 5, each by picking one representative track per
// attempt (exploit-weighted within the artist's catalog) until the
// target is hit or attempts (target*4) are exhausted, at which point the
// artist's first three tracks are used as a fallback.
func ExpandArtists(ctx context.Context, client library.Client, artists []models.Artist, seedMode models.SeedMode, deepDiveTarget int, exploitWeight float64, rnd *rng.Source) ([]models.Track, error) {
	target := 5
	if seedMode == models.SeedModeAlbumEchoes {
		target = deepDiveTarget
	}
	if target <= 0 {
		target = 5
	}

	var out []models.Track
	seen := make(map[string]bool)

	for _, artist := range artists {
		tracks, err := client.ListTracksByArtist(ctx, artist.ID)
		if err != nil || len(tracks) == 0 {
			continue
		}

		attempts := target * 4
		picked := 0
		for i := 0; i < attempts && picked < target; i++ {
			t := pickTrack(tracks, exploitWeight, rnd)
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
			picked++
		}

		if picked == 0 {
			n := 3
			if len(tracks) < n {
				n = len(tracks)
			}
			for _, t := range tracks[:n] {
				if seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				out = append(out, t)
			}
		}
	}

	return out, nil
}

// pickTrack chooses a single track from an ordered (by popularity,
// highest first) candidate list: with probability exploitWeight it draws
// uniformly from the top third (the proven favorites), otherwise it
// draws from a distribution skewed toward the front of the list via a
// squared random index (rnd()^2 * (n-1)), occasionally surfacing a deep
// cut.
func pickTrack(ordered []models.Track, exploitWeight float64, rnd *rng.Source) models.Track {
	sorted := sortByPopularityDesc(ordered)
	n := len(sorted)
	if n == 0 {
		return models.Track{}
	}
	if n == 1 {
		return sorted[0]
	}

	if rnd.Float64() < exploitWeight {
		topThird := n / 3
		if topThird < 1 {
			topThird = 1
		}
		return sorted[rnd.Intn(topThird)]
	}

	r := rnd.Float64()
	idx := int(r * r * float64(n-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func sortByPopularityDesc(tracks []models.Track) []models.Track {
	out := make([]models.Track, len(tracks))
	copy(out, tracks)
	for i := 0; i < len(out); i++ {
		best := i
		for j := i + 1; j < len(out); j++ {
			if out[j].PopularityScore() > out[best].PopularityScore() {
				best = j
			}
		}
		if best != i {
			out[i], out[best] = out[best], out[i]
		}
	}
	return out
}
