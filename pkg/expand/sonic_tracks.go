package expand

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// ExpandViaSonicTracks (track_sonic mode) walks each seed track's direct
// sonic neighbors, fetching min(targetTotal/len(seeds)+2, sonicLimit)
// tracks per seed and deduplicating across seeds as it goes.
func ExpandViaSonicTracks(ctx context.Context, client library.Client, seeds []models.Track, sonicLimit, targetTotal int) ([]models.Track, error) {
	if len(seeds) == 0 {
		return nil, nil
	}

	perSeed := targetTotal/len(seeds) + 2
	if perSeed > sonicLimit {
		perSeed = sonicLimit
	}
	if perSeed <= 0 {
		perSeed = 1
	}

	seen := make(map[string]bool)
	var out []models.Track

	for _, seed := range seeds {
		neighbors, err := client.SonicSimilarTracks(ctx, seed.ID, perSeed)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			out = append(out, n)
		}
	}

	return out, nil
}
