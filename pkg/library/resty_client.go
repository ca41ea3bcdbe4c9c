package library

import (
	"context"
	"fmt"
	"time"

	goccyjson "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// RestyClient is the production Client backed by the Library Server's
// REST API: bearer-token authenticated, rate limited, and circuit
// breaker protected. It never retries — a failed call is surfaced once
// to the caller, which decides whether to skip or abort.
type RestyClient struct {
	http    *resty.Client
	log     *zap.Logger
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[any]

	baseURL      string
	token        string
	musicLibrary string
}

// Options configures the resilience wrapping around the transport.
type Options struct {
	BaseURL      string
	Token        string
	MusicLibrary string
	Timeout      time.Duration
	// RateLimitPerSecond is the sustained cap on outbound Library Server
	// calls. Zero disables throttling.
	RateLimitPerSecond float64
	RateLimitBurst     int
	// BreakerFailureThreshold is the number of consecutive failures that
	// trips the breaker open.
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
}

// NewRestyClient builds a Client from the given Options.
func NewRestyClient(opts Options, log *zap.Logger) *RestyClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetAuthToken(opts.Token)
	httpc.JSONMarshal = goccyjson.Marshal
	httpc.JSONUnmarshal = goccyjson.Unmarshal

	var limiter *rate.Limiter
	if opts.RateLimitPerSecond > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitPerSecond), burst)
	}

	threshold := opts.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	openTimeout := opts.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "library-client",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("library client circuit breaker state change",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	return &RestyClient{
		http:         httpc,
		log:          log,
		limiter:      limiter,
		breaker:      breaker,
		baseURL:      opts.BaseURL,
		token:        opts.Token,
		musicLibrary: opts.MusicLibrary,
	}
}

// do executes a single call through the rate limiter and circuit
// breaker. fn performs one HTTP request, or two where a sonic lookup
// falls back to its second endpoint; either way it counts as one call.
func (c *RestyClient) do(ctx context.Context, op string, fn func() error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: op, Err: err}
		}
	}
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	return nil
}

func (c *RestyClient) ResolveMusicSection(ctx context.Context) error {
	var sections []struct {
		Title string `json:"title"`
	}
	err := c.do(ctx, "resolve_music_section", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&sections).Get("/library/sections")
		return checkResp(resp, err)
	})
	if err != nil {
		return &ConnectionError{Reason: "could not reach library server", Err: err}
	}
	for _, s := range sections {
		if s.Title == c.musicLibrary {
			return nil
		}
	}
	return &ConnectionError{Reason: fmt.Sprintf("music library %q not found", c.musicLibrary)}
}

func (c *RestyClient) FetchTrack(ctx context.Context, id string) (models.Track, error) {
	var t models.Track
	err := c.do(ctx, "fetch_track", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&t).Get("/library/metadata/" + id)
		return checkResp(resp, err)
	})
	return t, err
}

func (c *RestyClient) FetchAlbum(ctx context.Context, id string) (models.Album, error) {
	var a models.Album
	err := c.do(ctx, "fetch_album", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&a).Get("/library/metadata/" + id)
		return checkResp(resp, err)
	})
	return a, err
}

func (c *RestyClient) FetchArtist(ctx context.Context, id string) (models.Artist, error) {
	var a models.Artist
	err := c.do(ctx, "fetch_artist", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&a).Get("/library/metadata/" + id)
		return checkResp(resp, err)
	})
	return a, err
}

func (c *RestyClient) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var out []models.Artist
	err := c.do(ctx, "list_artists", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParam("type", "8").
			Get("/library/sections/" + c.musicLibrary + "/all")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) ListAlbums(ctx context.Context, artistID string) ([]models.Album, error) {
	var out []models.Album
	err := c.do(ctx, "list_albums", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			Get("/library/metadata/" + artistID + "/children")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) ListTracksByAlbum(ctx context.Context, albumID string) ([]models.Track, error) {
	var out []models.Track
	err := c.do(ctx, "list_tracks_by_album", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			Get("/library/metadata/" + albumID + "/children")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) ListTracksByArtist(ctx context.Context, artistID string) ([]models.Track, error) {
	var out []models.Track
	err := c.do(ctx, "list_tracks_by_artist", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParam("type", "10").
			Get("/library/metadata/" + artistID + "/allLeaves")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) SearchTracksByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	var out []models.Track
	err := c.do(ctx, "search_tracks", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{
				"type":  "10",
				"genre": genre,
				"limit": fmt.Sprintf("%d", limit),
			}).
			Get("/library/sections/" + c.musicLibrary + "/search")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) SearchAlbumsByGenre(ctx context.Context, genre string, limit int) ([]models.Album, error) {
	var out []models.Album
	err := c.do(ctx, "search_albums", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{
				"type":  "9",
				"genre": genre,
				"limit": fmt.Sprintf("%d", limit),
			}).
			Get("/library/sections/" + c.musicLibrary + "/search")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) SearchArtistsByName(ctx context.Context, name string) ([]models.Artist, error) {
	var out []models.Artist
	err := c.do(ctx, "search_artists", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{
				"type":  "8",
				"title": name,
			}).
			Get("/library/sections/" + c.musicLibrary + "/search")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) History(ctx context.Context, sinceUnix int64) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	err := c.do(ctx, "history", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{
				"librarySectionID": c.musicLibrary,
				"mindate":          fmt.Sprintf("%d", sinceUnix),
			}).
			Get("/status/sessions/history/all")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) SonicSimilarAlbums(ctx context.Context, albumID string, limit int) ([]models.Album, error) {
	var out []models.Album
	err := c.do(ctx, "sonic_similar_albums", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			Get("/library/metadata/" + albumID + "/sonicallySimilar")
		if err == nil && resp != nil && !resp.IsError() {
			return nil
		}
		// fallback path, matching the two-path original implementation
		resp2, err2 := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{"context": "sonicallySimilar", "limit": fmt.Sprintf("%d", limit)}).
			Get("/library/metadata/" + albumID + "/nearest")
		return checkResp(resp2, err2)
	})
	return out, err
}

func (c *RestyClient) SonicSimilarArtists(ctx context.Context, artistID string, limit int) ([]models.Artist, error) {
	var out []models.Artist
	err := c.do(ctx, "sonic_similar_artists", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{"context": "sonicallySimilar", "limit": fmt.Sprintf("%d", limit)}).
			Get("/library/metadata/" + artistID + "/nearest")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) SonicSimilarTracks(ctx context.Context, trackID string, limit int) ([]models.Track, error) {
	var out []models.Track
	err := c.do(ctx, "sonic_similar_tracks", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParam("limit", fmt.Sprintf("%d", limit)).
			Get("/library/metadata/" + trackID + "/related/sonic")
		if err == nil && resp != nil && !resp.IsError() {
			return nil
		}
		// fallback: "nearest?context=sonicallySimilar" per spec 4.1
		resp2, err2 := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParams(map[string]string{"context": "sonicallySimilar", "limit": fmt.Sprintf("%d", limit)}).
			Get("/library/metadata/" + trackID + "/nearest")
		return checkResp(resp2, err2)
	})
	return out, err
}

func (c *RestyClient) ListPlaylists(ctx context.Context) ([]string, error) {
	var raw []struct {
		Title string `json:"title"`
	}
	err := c.do(ctx, "list_playlists", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&raw).Get("/playlists")
		return checkResp(resp, err)
	})
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.Title)
	}
	return out, err
}

func (c *RestyClient) PlaylistItems(ctx context.Context, name string) ([]models.Track, error) {
	id, err := c.resolvePlaylistID(ctx, name)
	if err != nil {
		return nil, err
	}
	var out []models.Track
	err = c.do(ctx, "playlist_items", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/playlists/" + id + "/items")
		return checkResp(resp, err)
	})
	return out, err
}

func (c *RestyClient) resolvePlaylistID(ctx context.Context, name string) (string, error) {
	var raw []struct {
		RatingKey string `json:"ratingKey"`
		Title     string `json:"title"`
	}
	err := c.do(ctx, "resolve_playlist", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&raw).Get("/playlists")
		return checkResp(resp, err)
	})
	if err != nil {
		return "", err
	}
	for _, r := range raw {
		if r.Title == name {
			return r.RatingKey, nil
		}
	}
	return "", &NotFoundError{ID: name}
}

func (c *RestyClient) CreatePlaylist(ctx context.Context, name string, tracks []models.Track) error {
	keys := trackKeys(tracks)
	return c.do(ctx, "create_playlist", func() error {
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParams(map[string]string{
				"type":  "audio",
				"title": name,
				"uri":   "library://" + c.musicLibrary + "/item/" + keys,
			}).
			Post("/playlists")
		return checkResp(resp, err)
	})
}

func (c *RestyClient) ReplacePlaylistItems(ctx context.Context, name string, tracks []models.Track) error {
	id, err := c.resolvePlaylistID(ctx, name)
	if err != nil {
		return err
	}
	if err := c.do(ctx, "clear_playlist", func() error {
		resp, err := c.http.R().SetContext(ctx).Delete("/playlists/" + id + "/items")
		return checkResp(resp, err)
	}); err != nil {
		return err
	}
	keys := trackKeys(tracks)
	return c.do(ctx, "replace_playlist_items", func() error {
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParam("uri", "library://"+c.musicLibrary+"/item/"+keys).
			Put("/playlists/" + id + "/items")
		return checkResp(resp, err)
	})
}

func (c *RestyClient) SetPlaylistSummary(ctx context.Context, name string, summary string) error {
	id, err := c.resolvePlaylistID(ctx, name)
	if err != nil {
		return err
	}
	return c.do(ctx, "set_playlist_summary", func() error {
		resp, err := c.http.R().SetContext(ctx).
			SetQueryParam("summary.value", summary).
			Put("/playlists/" + id)
		return checkResp(resp, err)
	})
}

func (c *RestyClient) UploadPlaylistPoster(ctx context.Context, name string, pngPath string) error {
	id, err := c.resolvePlaylistID(ctx, name)
	if err != nil {
		return err
	}
	return c.do(ctx, "upload_playlist_poster", func() error {
		resp, err := c.http.R().SetContext(ctx).
			SetFile("thumb", pngPath).
			Post("/playlists/" + id + "/poster")
		return checkResp(resp, err)
	})
}

func (c *RestyClient) ResolveCollectionTracks(ctx context.Context, name string) ([]models.Track, error) {
	var out []models.Track
	err := c.do(ctx, "resolve_collection", func() error {
		resp, err := c.http.R().SetContext(ctx).SetResult(&out).
			SetQueryParam("collection", name).
			Get("/library/sections/" + c.musicLibrary + "/all")
		return checkResp(resp, err)
	})
	return out, err
}

func checkResp(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp != nil && resp.IsError() {
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return nil
}

func trackKeys(tracks []models.Track) string {
	s := ""
	for i, t := range tracks {
		if i > 0 {
			s += ","
		}
		s += t.ID
	}
	return s
}
