package expand

import (
	"context"
	"sort"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// ExpandSonicHistory favors tracks that are sonic neighbors of more than
// one recently-played track — the intersection of "sounds like history"
// across several history seeds. When the intersection alone falls short
// of maxTracks it backfills first with the remaining (single-hit)
// neighbors in shuffled order, then with plain history tracks.
func ExpandSonicHistory(ctx context.Context, client library.Client, seeds []models.Track, preset models.Preset, rnd *rng.Source) ([]models.Track, error) {
	lookback := time.Now().AddDate(0, 0, -preset.HistoryLookbackDays)
	entries, err := client.History(ctx, lookback.Unix())
	if err != nil {
		return nil, err
	}

	historyIDs := make(map[string]bool, len(entries))
	var historyTracks []models.Track
	for _, e := range entries {
		if historyIDs[e.RatingKey] {
			continue
		}
		historyIDs[e.RatingKey] = true
		t, err := client.FetchTrack(ctx, e.RatingKey)
		if err != nil {
			continue
		}
		historyTracks = append(historyTracks, t)
	}
	if len(historyTracks) == 0 {
		historyTracks = seeds
	}

	hitCount := make(map[string]int)
	neighborTrack := make(map[string]models.Track)

	for _, ht := range historyTracks {
		neighbors, err := client.SonicSimilarTracks(ctx, ht.ID, preset.SonicSimilarLimit)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			if historyIDs[n.ID] {
				continue
			}
			hitCount[n.ID]++
			neighborTrack[n.ID] = n
		}
	}

	neighborIDs := make([]string, 0, len(neighborTrack))
	for id := range neighborTrack {
		neighborIDs = append(neighborIDs, id)
	}
	sort.Strings(neighborIDs)
	rnd.Shuffle(len(neighborIDs), func(i, j int) { neighborIDs[i], neighborIDs[j] = neighborIDs[j], neighborIDs[i] })

	var intersection []models.Track
	seen := make(map[string]bool)
	for _, id := range neighborIDs {
		if hitCount[id] >= 2 {
			intersection = append(intersection, neighborTrack[id])
			seen[id] = true
		}
	}

	if len(intersection) < preset.MaxTracks {
		for _, id := range neighborIDs {
			if len(intersection) >= preset.MaxTracks {
				break
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			intersection = append(intersection, neighborTrack[id])
		}
	}

	if len(intersection) < preset.MaxTracks {
		for _, t := range historyTracks {
			if len(intersection) >= preset.MaxTracks {
				break
			}
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			intersection = append(intersection, t)
		}
	}

	return intersection, nil
}
