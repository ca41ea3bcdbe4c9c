// Package smooth reorders a finished track list into a smoother sonic
// gradient: a greedy walk that always hops to whichever remaining track
// sounds most like the current one, penalizing same-artist repeats so
// the result doesn't clump.
package smooth

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

const (
	neighborFetchLimit   = 50
	sameArtistPenalty    = 25
)

// Gradient reorders tracks to favor smooth sonic transitions. It starts
// from a random index, then repeatedly scores the current track's sonic
// neighbors (up to neighborFetchLimit) against whatever remains in the
// pool, hopping to the best-scoring match still available; a track
// played by the same artist as the current one loses sameArtistPenalty
// points. When none of the fetched neighbors remain in the pool (a dead
// end), the walk pops the next track off the front of what's left
// instead of stalling.
func Gradient(ctx context.Context, client library.Client, tracks []models.Track, rnd *rng.Source) []models.Track {
	if len(tracks) <= 2 {
		return tracks
	}

	pool := make([]models.Track, len(tracks))
	copy(pool, tracks)

	startIdx := rnd.Intn(len(pool))
	current := pool[startIdx]
	pool = append(pool[:startIdx], pool[startIdx+1:]...)

	out := make([]models.Track, 0, len(tracks))
	out = append(out, current)

	for len(pool) > 0 {
		neighbors, err := client.SonicSimilarTracks(ctx, current.ID, neighborFetchLimit)
		if err != nil {
			neighbors = nil
		}

		bestIdx := -1
		bestScore := -1.0
		for rank, n := range neighbors {
			idx := indexOf(pool, n.ID)
			if idx < 0 {
				continue
			}
			score := float64(100 - rank)
			if pool[idx].ArtistID == current.ArtistID {
				score -= sameArtistPenalty
			}
			if score > bestScore {
				bestScore = score
				bestIdx = idx
			}
		}

		if bestIdx < 0 {
			current = pool[0]
			pool = pool[1:]
		} else {
			current = pool[bestIdx]
			pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
		}

		out = append(out, current)
	}

	return out
}

func indexOf(tracks []models.Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
