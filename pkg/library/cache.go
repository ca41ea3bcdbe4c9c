package library

import (
	"sync"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// ArtistMeta is the slice of artist metadata the static filter needs:
// its collection and genre tag sets, plus its own rating for the
// min_rating.artist gate.
type ArtistMeta struct {
	Collections []string
	Genres      []string
	UserRating  *float64
}

// RunCaches holds the per-run album and artist-metadata caches. It is
// created once at the start of a generation run and discarded at the end
// — never a process-wide singleton (DESIGN NOTES: "global runtime
// caches... per-run"). Safe for concurrent use since fetches may be
// parallelized across seeds/albums/artists.
type RunCaches struct {
	mu      sync.Mutex
	albums  map[string]models.Album
	artists map[string]ArtistMeta
}

// NewRunCaches builds an empty cache pair.
func NewRunCaches() *RunCaches {
	return &RunCaches{
		albums:  make(map[string]models.Album),
		artists: make(map[string]ArtistMeta),
	}
}

// GetAlbum returns a cached album and whether it was present.
func (c *RunCaches) GetAlbum(id string) (models.Album, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.albums[id]
	return a, ok
}

// PutAlbum inserts an album into the cache. Safe to call concurrently;
// the lock covers only this insert, so a GetAlbum followed by a PutAlbum
// is not atomic and two callers may both fetch and store the same album.
func (c *RunCaches) PutAlbum(id string, a models.Album) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.albums[id] = a
}

// GetArtistMeta returns cached artist metadata and whether it was present.
func (c *RunCaches) GetArtistMeta(id string) (ArtistMeta, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.artists[id]
	return m, ok
}

// PutArtistMeta inserts artist metadata into the cache.
func (c *RunCaches) PutArtistMeta(id string, m ArtistMeta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.artists[id] = m
}
