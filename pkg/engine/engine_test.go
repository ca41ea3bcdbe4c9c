package engine

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/rng"
)

type fakeEngineClient struct {
	library.Client
	history []models.HistoryEntry
	tracks  map[string]models.Track
	albums  map[string]models.Album
}

func (f *fakeEngineClient) ResolveMusicSection(ctx context.Context) error { return nil }

func (f *fakeEngineClient) History(ctx context.Context, sinceUnix int64) ([]models.HistoryEntry, error) {
	return f.history, nil
}

func (f *fakeEngineClient) FetchTrack(ctx context.Context, id string) (models.Track, error) {
	return f.tracks[id], nil
}

func (f *fakeEngineClient) FetchAlbum(ctx context.Context, id string) (models.Album, error) {
	return f.albums[id], nil
}

func (f *fakeEngineClient) ResolveCollectionTracks(ctx context.Context, name string) ([]models.Track, error) {
	return nil, nil
}

func TestRun_HistoryMode_DryRun(t *testing.T) {
	client := &fakeEngineClient{
		history: []models.HistoryEntry{{RatingKey: "t1"}, {RatingKey: "t2"}, {RatingKey: "t3"}},
		tracks: map[string]models.Track{
			"t1": {ID: "t1", ArtistID: "a1", AlbumID: "alb1", ArtistName: "Artist One", Title: "Song One"},
			"t2": {ID: "t2", ArtistID: "a2", AlbumID: "alb2", ArtistName: "Artist Two", Title: "Song Two"},
			"t3": {ID: "t3", ArtistID: "a3", AlbumID: "alb3", ArtistName: "Artist Three", Title: "Song Three"},
		},
		albums: map[string]models.Album{
			"alb1": {ID: "alb1"},
			"alb2": {ID: "alb2"},
			"alb3": {ID: "alb3"},
		},
	}

	preset := models.Preset{
		SeedMode:         models.SeedModeHistory,
		SeedFallbackMode: "history",
		MaxTracks:        10,
		ExploitWeight:    0.5,
		MinPlayCount:     -1,
		MaxPlayCount:     -1,
		AllowUnrated:     true,
	}

	eng := New(client, client, nil, rng.New(1), zap.NewNop(), true)
	err := eng.Run(context.Background(), preset, "Test Mix")
	if err != nil {
		t.Fatalf("unexpected error on a dry run: %v", err)
	}
}

func TestRun_NoSeedsReturnsExitCodeTwo(t *testing.T) {
	client := &fakeEngineClient{}
	preset := models.Preset{
		SeedMode:      models.SeedModeHistory,
		MaxTracks:     10,
		ExploitWeight: 0.5,
		MinPlayCount:  -1,
		MaxPlayCount:  -1,
	}

	eng := New(client, client, nil, rng.New(1), zap.NewNop(), true)
	err := eng.Run(context.Background(), preset, "")

	var exitErr *ExitError
	if err == nil {
		t.Fatalf("expected an error when no seeds resolve")
	}
	if !asExitError(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2 for no seeds, got %+v", err)
	}
}

func asExitError(err error, target **ExitError) bool {
	e, ok := err.(*ExitError)
	if !ok {
		return false
	}
	*target = e
	return true
}
