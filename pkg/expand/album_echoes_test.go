package expand

import (
	"context"
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

type fakeAlbumClient struct {
	library.Client
	similarAlbums map[string][]models.Album
	albumTracks   map[string][]models.Track
}

func (f *fakeAlbumClient) SonicSimilarAlbums(ctx context.Context, albumID string, limit int) ([]models.Album, error) {
	return f.similarAlbums[albumID], nil
}

func (f *fakeAlbumClient) ListTracksByAlbum(ctx context.Context, albumID string) ([]models.Track, error) {
	return f.albumTracks[albumID], nil
}

func tenTracks(prefix string) []models.Track {
	out := make([]models.Track, 10)
	for i := range out {
		out[i] = models.Track{ID: prefix + string(rune('a'+i)), AlbumID: prefix}
	}
	return out
}

func TestExpandAlbumEchoes_FairSplit(t *testing.T) {
	seeds := []models.Track{{ID: "s1", AlbumID: "alb1"}, {ID: "s2", AlbumID: "alb2"}}
	client := &fakeAlbumClient{
		similarAlbums: map[string][]models.Album{
			"alb1": {{ID: "sim1"}},
			"alb2": {{ID: "sim2"}},
		},
		albumTracks: map[string][]models.Track{
			"sim1": tenTracks("x"),
			"sim2": tenTracks("y"),
		},
	}

	out, err := ExpandAlbumEchoes(context.Background(), client, library.NewRunCaches(), seeds, 12, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 12 {
		t.Fatalf("expected 12 tracks from a fair 6+6 split, got %d", len(out))
	}
}

func TestExpandAlbumEchoes_NoSeedAlbumsReturnsNil(t *testing.T) {
	out, err := ExpandAlbumEchoes(context.Background(), &fakeAlbumClient{}, library.NewRunCaches(), nil, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil for no seed albums, got %+v", out)
	}
}
