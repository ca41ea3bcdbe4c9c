// Package seeds collects the initial set of tracks a generation run
// expands from: listening history, explicitly named tracks/playlists/
// collections/artists, and (for the Smart-Seed modes) a handful of
// representative tracks pulled from artists the listener already likes.
package seeds

import (
	"context"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// History resolves the listening-history window into seed track ids and
// the set of recently-played keys the static filter must reject
// (ExcludePlayedDays), independent of whether history seeding itself is
// in play for this run's SeedMode — excluded keys are always collected
// first, matching the original harvester's seed-collection order.
type History struct {
	SeedTrackIDs []string
	ExcludedKeys map[string]bool
}

// CollectHistory reads the play-history window and splits it into seed
// candidates (within HistoryLookbackDays and, when UseTimePeriods is set,
// the current hour-of-day bucket) and excluded keys (anything played
// within the last ExcludePlayedDays). Seed candidates are not filtered by
// HistoryMinRating or HistoryMaxPlayCount; no tracks are fetched here.
func CollectHistory(ctx context.Context, client library.Client, preset models.Preset, now time.Time) (History, error) {
	lookback := now.AddDate(0, 0, -preset.HistoryLookbackDays)
	entries, err := client.History(ctx, lookback.Unix())
	if err != nil {
		return History{}, err
	}

	excludeCutoff := now.AddDate(0, 0, -preset.ExcludePlayedDays)
	excluded := make(map[string]bool)
	seedIDs := make([]string, 0, len(entries))
	seen := make(map[string]bool)

	var allowedHours map[int]bool
	if preset.UseTimePeriods {
		allowedHours = models.AllowedHours(models.CurrentPeriod(now))
	}

	for _, e := range entries {
		viewedAt := time.Unix(e.ViewedAt, 0)

		if viewedAt.After(excludeCutoff) {
			excluded[e.RatingKey] = true
		}

		if allowedHours != nil && !allowedHours[viewedAt.Hour()] {
			continue
		}
		if seen[e.RatingKey] {
			continue
		}
		seen[e.RatingKey] = true
		seedIDs = append(seedIDs, e.RatingKey)
	}

	return History{SeedTrackIDs: seedIDs, ExcludedKeys: excluded}, nil
}
