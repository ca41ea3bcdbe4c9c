package seeds

import (
	"context"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// CollectSeedArtists resolves the preset's named artists against the
// search endpoint: an exact title match first, falling back to a
// normalized (lower-cased, whitespace-stripped) comparison so "The Band"
// and "theband" still resolve to the same artist.
func CollectSeedArtists(ctx context.Context, client library.Client, names []string) ([]models.Artist, error) {
	out := make([]models.Artist, 0, len(names))
	for _, name := range names {
		candidates, err := client.SearchArtistsByName(ctx, name)
		if err != nil {
			continue
		}

		if a, ok := findExact(candidates, name); ok {
			out = append(out, a)
			continue
		}
		if a, ok := findNormalized(candidates, name); ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func findExact(candidates []models.Artist, name string) (models.Artist, bool) {
	for _, a := range candidates {
		if a.Name == name {
			return a, true
		}
	}
	return models.Artist{}, false
}

func findNormalized(candidates []models.Artist, name string) (models.Artist, bool) {
	target := normalizeName(name)
	for _, a := range candidates {
		if normalizeName(a.Name) == target {
			return a, true
		}
	}
	return models.Artist{}, false
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
