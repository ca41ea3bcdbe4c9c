package library

import (
	"context"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// Client is the typed surface the rest of the engine uses to talk to the
// Library Server. Every method may return a *NetworkError or
// *NotFoundError; callers decide whether a failure is fatal or skippable.
type Client interface {
	FetchTrack(ctx context.Context, id string) (models.Track, error)
	FetchAlbum(ctx context.Context, id string) (models.Album, error)
	FetchArtist(ctx context.Context, id string) (models.Artist, error)

	ListArtists(ctx context.Context) ([]models.Artist, error)
	ListAlbums(ctx context.Context, artistID string) ([]models.Album, error)
	ListTracksByAlbum(ctx context.Context, albumID string) ([]models.Track, error)
	ListTracksByArtist(ctx context.Context, artistID string) ([]models.Track, error)

	SearchTracksByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error)
	SearchAlbumsByGenre(ctx context.Context, genre string, limit int) ([]models.Album, error)
	SearchArtistsByName(ctx context.Context, name string) ([]models.Artist, error)

	History(ctx context.Context, sinceUnix int64) ([]models.HistoryEntry, error)

	SonicSimilarAlbums(ctx context.Context, albumID string, limit int) ([]models.Album, error)
	SonicSimilarArtists(ctx context.Context, artistID string, limit int) ([]models.Artist, error)
	SonicSimilarTracks(ctx context.Context, trackID string, limit int) ([]models.Track, error)

	ListPlaylists(ctx context.Context) ([]string, error)
	PlaylistItems(ctx context.Context, name string) ([]models.Track, error)
	CreatePlaylist(ctx context.Context, name string, tracks []models.Track) error
	ReplacePlaylistItems(ctx context.Context, name string, tracks []models.Track) error
	SetPlaylistSummary(ctx context.Context, name string, summary string) error
	UploadPlaylistPoster(ctx context.Context, name string, pngPath string) error

	// ResolveMusicSection verifies the configured music library exists,
	// surfacing a *ConnectionError if it does not.
	ResolveMusicSection(ctx context.Context) error
}

// CollectionResolver finds artists/albums/tracks tagged with the given
// collection name and flattens them to tracks, as the Seed Collector's
// collection-seed step requires.
type CollectionResolver interface {
	ResolveCollectionTracks(ctx context.Context, name string) ([]models.Track, error)
}
