package expand

import (
	"context"
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

type fakeHistoryClient struct {
	library.Client
	history   []models.HistoryEntry
	tracks    map[string]models.Track
	neighbors map[string][]models.Track
}

func (f *fakeHistoryClient) History(ctx context.Context, sinceUnix int64) ([]models.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeHistoryClient) FetchTrack(ctx context.Context, id string) (models.Track, error) {
	return f.tracks[id], nil
}

func (f *fakeHistoryClient) SonicSimilarTracks(ctx context.Context, trackID string, limit int) ([]models.Track, error) {
	return f.neighbors[trackID], nil
}

func TestExpandSonicHistory_IntersectionFirst(t *testing.T) {
	history := []models.HistoryEntry{{RatingKey: "h1"}, {RatingKey: "h2"}}
	tracks := map[string]models.Track{
		"h1": {ID: "h1"},
		"h2": {ID: "h2"},
	}

	shared := []models.Track{{ID: "shared1"}, {ID: "shared2"}, {ID: "shared3"}}
	onlyH1 := []models.Track{{ID: "only_h1_a"}, {ID: "only_h1_b"}}
	onlyH2 := []models.Track{{ID: "only_h2_a"}}

	client := &fakeHistoryClient{
		history: history,
		tracks:  tracks,
		neighbors: map[string][]models.Track{
			"h1": append(append([]models.Track{}, shared...), onlyH1...),
			"h2": append(append([]models.Track{}, shared...), onlyH2...),
		},
	}

	preset := models.Preset{MaxTracks: 10, HistoryLookbackDays: 90, SonicSimilarLimit: 20}
	out, err := ExpandSonicHistory(context.Background(), client, []models.Track{{ID: "h1"}}, preset, rng.New(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sharedSet := map[string]bool{"shared1": true, "shared2": true, "shared3": true}
	for i := 0; i < 3; i++ {
		if !sharedSet[out[i].ID] {
			t.Fatalf("expected the first 3 tracks to be the intersection, got %q at index %d", out[i].ID, i)
		}
	}
}

func TestExpandSonicHistory_Deterministic(t *testing.T) {
	history := []models.HistoryEntry{{RatingKey: "h1"}, {RatingKey: "h2"}}
	tracks := map[string]models.Track{"h1": {ID: "h1"}, "h2": {ID: "h2"}}
	neighbors := map[string][]models.Track{
		"h1": {{ID: "n1"}, {ID: "n2"}, {ID: "n3"}},
		"h2": {{ID: "n1"}, {ID: "n4"}},
	}
	preset := models.Preset{MaxTracks: 4, HistoryLookbackDays: 90, SonicSimilarLimit: 20}

	client := &fakeHistoryClient{history: history, tracks: tracks, neighbors: neighbors}
	a, errA := ExpandSonicHistory(context.Background(), client, []models.Track{{ID: "h1"}}, preset, rng.New(5))
	b, errB := ExpandSonicHistory(context.Background(), client, []models.Track{{ID: "h1"}}, preset, rng.New(5))
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch between identically-seeded runs")
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("expected identical order from identical seeds, diverged at %d", i)
		}
	}
}
