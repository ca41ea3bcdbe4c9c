package expand

import "github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"

// HistoricalBlend mixes a fraction of recently-played tracks back into an
// expanded candidate pool, sized by HistoricalRatio against MaxTracks.
// The caller skips this entirely for strict_collection, sonic_history,
// and history modes, where the pool already *is* (or is derived purely
// from) listening history.
func HistoricalBlend(expanded, historyTracks []models.Track, preset models.Preset) []models.Track {
	if preset.HistoricalRatio <= 0 || len(historyTracks) == 0 {
		return expanded
	}

	historyCount := int(float64(preset.MaxTracks) * preset.HistoricalRatio)
	if historyCount > len(historyTracks) {
		historyCount = len(historyTracks)
	}

	seen := make(map[string]bool, len(expanded)+historyCount)
	out := make([]models.Track, 0, len(expanded)+historyCount)

	for _, t := range historyTracks[:historyCount] {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	for _, t := range expanded {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}

	return out
}
