// Package genre implements the optional genre-normalization supplement:
// a specific-genre to simplified-genre table, with an on-demand
// classifier fallback for candidates that carry no genre tag at all.
// Entirely inert unless a preset sets genre_mapping_overrides_enabled.
package genre

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Classifier infers a genre from artist/title/album text when a
// candidate has none at any of track/album/artist level.
type Classifier interface {
	ClassifyGenre(ctx context.Context, artist, title, album string) (string, error)
}

// Mapping is a single specific -> simplified genre row, as loaded from
// the override store.
type Mapping struct {
	SpecificGenre   string
	SimplifiedGenre string
}

// Mapper normalizes raw genre tags to a coarser bucket and caches
// classifier results for the lifetime of a run.
type Mapper struct {
	mappings   map[string]string
	classifier Classifier
	log        *zap.Logger

	mu            sync.RWMutex
	classifyCache map[string]string
}

// NewMapper builds a Mapper from an override table and an optional
// classifier (nil disables classify-on-empty).
func NewMapper(mappings []Mapping, classifier Classifier, log *zap.Logger) *Mapper {
	m := make(map[string]string, len(mappings))
	for _, row := range mappings {
		m[strings.ToLower(row.SpecificGenre)] = strings.ToLower(row.SimplifiedGenre)
	}
	return &Mapper{
		mappings:      m,
		classifier:    classifier,
		log:           log,
		classifyCache: make(map[string]string),
	}
}

// Simplify normalizes a single genre tag through the override table. An
// unmapped tag is returned lower-cased, unchanged.
func (m *Mapper) Simplify(rawGenre string) string {
	if rawGenre == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(rawGenre))
	m.mu.RLock()
	simplified, ok := m.mappings[lower]
	m.mu.RUnlock()
	if ok {
		return simplified
	}
	return lower
}

// SimplifyAll normalizes a whole genre set, dropping duplicates.
func (m *Mapper) SimplifyAll(rawGenres []string) []string {
	seen := make(map[string]bool, len(rawGenres))
	out := make([]string, 0, len(rawGenres))
	for _, g := range rawGenres {
		s := m.Simplify(g)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ClassifyIfEmpty simplifies rawGenre if present; otherwise, when a
// classifier is configured, it infers one from artist/title/album and
// simplifies the result. Classification results are cached per
// (artist, title, album) for the run.
func (m *Mapper) ClassifyIfEmpty(ctx context.Context, rawGenre, artist, title, album string) (string, error) {
	if rawGenre != "" {
		return m.Simplify(rawGenre), nil
	}
	if m.classifier == nil {
		return "", nil
	}

	key := artist + "|" + title + "|" + album
	m.mu.RLock()
	if cached, ok := m.classifyCache[key]; ok {
		m.mu.RUnlock()
		return cached, nil
	}
	m.mu.RUnlock()

	classified, err := m.classifier.ClassifyGenre(ctx, artist, title, album)
	if err != nil {
		return "", err
	}
	simplified := m.Simplify(classified)

	m.mu.Lock()
	m.classifyCache[key] = simplified
	m.mu.Unlock()

	return simplified, nil
}
