package publish

import (
	"context"
	"image/color"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

type fakePublishClient struct {
	library.Client
	playlists      []string
	created        string
	replaced       string
	summarySet     string
	posterUploaded string
}

func (f *fakePublishClient) ListPlaylists(ctx context.Context) ([]string, error) {
	return f.playlists, nil
}

func (f *fakePublishClient) CreatePlaylist(ctx context.Context, name string, tracks []models.Track) error {
	f.created = name
	return nil
}

func (f *fakePublishClient) ReplacePlaylistItems(ctx context.Context, name string, tracks []models.Track) error {
	f.replaced = name
	return nil
}

func (f *fakePublishClient) SetPlaylistSummary(ctx context.Context, name, summary string) error {
	f.summarySet = summary
	return nil
}

func (f *fakePublishClient) UploadPlaylistPoster(ctx context.Context, name, pngPath string) error {
	f.posterUploaded = pngPath
	return nil
}

func TestRun_RefusesEmptyPlaylist(t *testing.T) {
	err := Run(context.Background(), &fakePublishClient{}, nil, Options{}, zap.NewNop())
	if err == nil {
		t.Fatalf("expected an error for an empty track list")
	}
}

func TestRun_CreatesWhenMissing(t *testing.T) {
	client := &fakePublishClient{}
	tracks := []models.Track{{ID: "1"}}
	opts := Options{Title: "My Mix", Summary: "a summary", TempDir: t.TempDir(), CoverFill: color.RGBA{A: 255}}

	if err := Run(context.Background(), client, tracks, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.created != "My Mix" {
		t.Fatalf("expected CreatePlaylist to be called for a missing playlist, created=%q", client.created)
	}
	if client.replaced != "" {
		t.Fatalf("expected ReplacePlaylistItems not to be called, got %q", client.replaced)
	}
	if client.summarySet != "a summary" {
		t.Fatalf("expected summary to be set, got %q", client.summarySet)
	}
	if client.posterUploaded == "" {
		t.Fatalf("expected a cover to be uploaded")
	}
}

func TestRun_ReplacesWhenExists(t *testing.T) {
	client := &fakePublishClient{playlists: []string{"My Mix"}}
	tracks := []models.Track{{ID: "1"}}
	opts := Options{Title: "My Mix", TempDir: t.TempDir()}

	if err := Run(context.Background(), client, tracks, opts, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.replaced != "My Mix" {
		t.Fatalf("expected ReplacePlaylistItems to be called for an existing playlist, replaced=%q", client.replaced)
	}
	if client.created != "" {
		t.Fatalf("expected CreatePlaylist not to be called, got %q", client.created)
	}
}

func TestSummary_Format(t *testing.T) {
	now := time.Date(2026, 7, 31, 14, 5, 0, 0, time.UTC)
	s := Summary(now, models.SeedModeGenre, 42)
	if s != "Generated 2026-07-31 14:05. Mode: genre. Tracks: 42." {
		t.Fatalf("unexpected summary format: %q", s)
	}
}
