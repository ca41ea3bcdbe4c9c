package filter

import (
	"testing"
	"time"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

func TestRank_FullExploitOrdersByRankAscending(t *testing.T) {
	pool := []Scored{
		{Track: models.Track{ID: "last"}, Rank: 2, Total: 3},
		{Track: models.Track{ID: "first"}, Rank: 0, Total: 3},
		{Track: models.Track{ID: "middle"}, Rank: 1, Total: 3},
	}
	preset := models.Preset{ExploitWeight: 1.0}

	out := Rank(pool, preset, rng.New(1), time.Now())
	if len(out) != 3 || out[0].ID != "first" || out[1].ID != "middle" || out[2].ID != "last" {
		t.Fatalf("expected rank-ascending order under full exploit, got %+v", out)
	}
}

func TestRank_Deterministic(t *testing.T) {
	pool := []Scored{
		{Track: models.Track{ID: "a"}, Rank: 0, Total: 5},
		{Track: models.Track{ID: "b"}, Rank: 1, Total: 5},
		{Track: models.Track{ID: "c"}, Rank: 2, Total: 5},
	}
	preset := models.Preset{ExploitWeight: 0.3}
	now := time.Now()

	a := Rank(pool, preset, rng.New(99), now)
	b := Rank(pool, preset, rng.New(99), now)

	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("expected identical order from identical seeds, diverged at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestRank_RecentBoostFavorsNewerTrack(t *testing.T) {
	now := time.Now()
	pool := []Scored{
		{Track: models.Track{ID: "old", AddedAt: now.AddDate(0, 0, -365)}, Rank: 0, Total: 2},
		{Track: models.Track{ID: "new", AddedAt: now}, Rank: 1, Total: 2},
	}
	preset := models.Preset{ExploitWeight: 1.0, RecentlyAddedDays: 30, RecentlyAddedWeight: 5.0}

	out := Rank(pool, preset, rng.New(1), now)
	if out[0].ID != "new" {
		t.Fatalf("expected the recently-added track to be boosted to the front, got %+v", out)
	}
}
