package expand

import (
	"context"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// ExpandStrictCollection scores every track already resolved from the
// named collection by a recency/legacy blend controlled by
// NewVsLegacySlider, and returns the top maxTracks*4 by weight. No
// filtering happens here; the engine's validation pass still runs the
// static filter over this pool, with only the include-collections gate
// dropped for this mode (see filter.NewChecker).
func ExpandStrictCollection(ctx context.Context, tracks []models.Track, preset models.Preset, rnd *rng.Source) ([]models.Track, error) {
	now := time.Now()
	slider := preset.NewVsLegacySlider

	type scored struct {
		track  models.Track
		weight float64
	}

	scoredTracks := make([]scored, 0, len(tracks))
	for _, t := range tracks {
		ageDays := 0.0
		if !t.AddedAt.IsZero() {
			ageDays = now.Sub(t.AddedAt).Hours() / 24
		}
		rScore := 100 - ageDays*(100.0/180.0)
		if rScore < 0 {
			rScore = 0
		}

		rating := 0.0
		if t.UserRating != nil {
			rating = *t.UserRating
		}
		lScore := float64(t.ViewCount)*5 + rating*10
		if lScore > 100 {
			lScore = 100
		}

		weight := rScore*slider + lScore*(1-slider)
		if slider > 0.5 && t.ViewCount == 0 {
			weight += 30
		}

		scoredTracks = append(scoredTracks, scored{track: t, weight: weight})
	}

	for i := 0; i < len(scoredTracks); i++ {
		best := i
		for j := i + 1; j < len(scoredTracks); j++ {
			if scoredTracks[j].weight > scoredTracks[best].weight {
				best = j
			}
		}
		if best != i {
			scoredTracks[i], scoredTracks[best] = scoredTracks[best], scoredTracks[i]
		}
	}

	limit := preset.MaxTracks * 4
	if limit <= 0 || limit > len(scoredTracks) {
		limit = len(scoredTracks)
	}

	out := make([]models.Track, 0, limit)
	for _, s := range scoredTracks[:limit] {
		out = append(out, s.track)
	}
	return out, nil
}
