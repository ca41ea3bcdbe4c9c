// Package publish creates or replaces a playlist on the Library Server,
// sets its summary, and renders + uploads a generated cover image.
package publish

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// Options controls what gets published for a run.
type Options struct {
	Title     string
	Summary   string
	TempDir   string
	CoverFill color.RGBA
	Now       time.Time
}

// Run creates the named playlist if it doesn't exist (or replaces its
// items if it does), sets its summary, and uploads a freshly rendered
// cover — cleaning up the temp file whether the upload succeeds or not.
func Run(ctx context.Context, client library.Client, tracks []models.Track, opts Options, log *zap.Logger) error {
	if len(tracks) == 0 {
		return fmt.Errorf("refusing to publish an empty playlist")
	}

	existing, err := client.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("list playlists: %w", err)
	}

	exists := false
	for _, name := range existing {
		if name == opts.Title {
			exists = true
			break
		}
	}

	if exists {
		if err := client.ReplacePlaylistItems(ctx, opts.Title, tracks); err != nil {
			return fmt.Errorf("replace playlist items: %w", err)
		}
	} else {
		if err := client.CreatePlaylist(ctx, opts.Title, tracks); err != nil {
			return fmt.Errorf("create playlist: %w", err)
		}
	}

	if err := client.SetPlaylistSummary(ctx, opts.Title, opts.Summary); err != nil {
		log.Warn("failed to set playlist summary", zap.Error(err), zap.String("playlist", opts.Title))
	}

	coverPath, err := writeTempCover(opts.TempDir, opts.Title, opts.CoverFill, opts.Now)
	if err != nil {
		log.Warn("failed to render cover", zap.Error(err))
		return nil
	}
	defer os.Remove(coverPath)

	if err := client.UploadPlaylistPoster(ctx, opts.Title, coverPath); err != nil {
		log.Warn("failed to upload playlist cover", zap.Error(err), zap.String("playlist", opts.Title))
	}

	return nil
}

// Summary builds the descriptive blurb stored alongside the playlist.
func Summary(now time.Time, seedMode models.SeedMode, trackCount int) string {
	return fmt.Sprintf("Generated %s. Mode: %s. Tracks: %d.", now.Format("2006-01-02 15:04"), seedMode, trackCount)
}
