package filter

import (
	"sort"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

// Scored pairs a candidate with the rank it was pulled from its source
// list at, if any (-1 means "no inherent order", e.g. a genre search
// result), so Rank can fall back to popularity-based quality.
type Scored struct {
	Track models.Track
	Rank  int
	Total int
}

// Rank runs the explore/exploit scoring pass over a candidate pool and
// returns it sorted best-first. Quality comes from popularity (when the
// pool carries no inherent order) or from each candidate's position in
// its source list, then gets multiplied by RecentlyAddedWeight for
// tracks added inside RecentlyAddedDays before the explore/exploit mix,
// so a weight of 1.0 is a true no-op and the random-noise term is never
// touched by it.
func Rank(pool []Scored, preset models.Preset, rnd *rng.Source, now time.Time) []models.Track {
	if len(pool) == 0 {
		return nil
	}

	maxPopularity := 0.0
	for _, s := range pool {
		if p := s.Track.PopularityScore(); p > maxPopularity {
			maxPopularity = p
		}
	}

	type entry struct {
		track models.Track
		score float64
	}
	entries := make([]entry, 0, len(pool))
	for _, s := range pool {
		q := quality(s, maxPopularity)

		if preset.RecentlyAddedDays > 0 && !s.Track.AddedAt.IsZero() {
			ageDays := now.Sub(s.Track.AddedAt).Hours() / 24
			if ageDays <= float64(preset.RecentlyAddedDays) {
				q *= preset.RecentlyAddedWeight
			}
		}

		score := q*preset.ExploitWeight + rnd.Float64()*(1-preset.ExploitWeight)
		entries = append(entries, entry{track: s.Track, score: score})
	}

	// Stable sort keeps ties in original relative order, matching the
	// original's use of Python's stable list.sort.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score > entries[j].score })

	out := make([]models.Track, len(entries))
	for i, e := range entries {
		out[i] = e.track
	}
	return out
}

func quality(s Scored, maxPopularity float64) float64 {
	if s.Rank >= 0 && s.Total > 0 {
		return 1 - float64(s.Rank)/float64(s.Total)
	}
	if maxPopularity <= 0 {
		return 0
	}
	return s.Track.PopularityScore() / maxPopularity
}
