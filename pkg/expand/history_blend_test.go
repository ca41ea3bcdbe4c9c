package expand

import (
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

func TestHistoricalBlend_MixesRatio(t *testing.T) {
	history := []models.Track{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"}}
	expanded := []models.Track{{ID: "e1"}, {ID: "e2"}}
	preset := models.Preset{MaxTracks: 10, HistoricalRatio: 0.5}

	out := HistoricalBlend(expanded, history, preset)

	historyCount := 0
	for _, t := range out {
		if t.ID == "h1" || t.ID == "h2" || t.ID == "h3" || t.ID == "h4" {
			historyCount++
		}
	}
	if historyCount != 4 {
		t.Fatalf("expected all 4 history tracks included under a 0.5 ratio against 10 tracks, got %d", historyCount)
	}
	if len(out) != 6 {
		t.Fatalf("expected 4 history + 2 expanded = 6 tracks, got %d", len(out))
	}
}

func TestHistoricalBlend_NoopWhenRatioZero(t *testing.T) {
	expanded := []models.Track{{ID: "e1"}}
	preset := models.Preset{MaxTracks: 10, HistoricalRatio: 0}

	out := HistoricalBlend(expanded, []models.Track{{ID: "h1"}}, preset)
	if len(out) != 1 || out[0].ID != "e1" {
		t.Fatalf("expected blend to be a no-op when ratio is 0, got %+v", out)
	}
}

func TestDedupByID(t *testing.T) {
	in := []models.Track{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	out := dedupByID(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 deduplicated tracks, got %d", len(out))
	}
}
