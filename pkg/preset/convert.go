package preset

import (
	"strconv"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// seedModeLabels maps the UI's human-readable seed mode label to the
// engine's enum value.
var seedModeLabels = map[string]models.SeedMode{
	"Auto (infer from seeds/history)":   models.SeedModeAuto,
	"Deep Dive (Seed Albums)":           models.SeedModeAlbumEchoes,
	"History + Seeds (Union)":           models.SeedModeHistory,
	"Genre seeds":                       models.SeedModeGenre,
	"Sonic Artist Mix":                  models.SeedModeSonicArtistMix,
	"Sonic Album Mix":                   models.SeedModeSonicAlbumMix,
	"Sonic Tracks Mix":                  models.SeedModeTrackSonic,
	"Sonic Combo (Albums + Artists)":    models.SeedModeSonicCombo,
	"Sonic History (Intersection)":      models.SeedModeSonicHistory,
	"Strict Collection":                 models.SeedModeStrictCollection,
}

// IsUIShape reports whether a raw JSON document is UI-shaped (flat pc_*
// keys) rather than engine-shaped ({"plex": ..., "playlist": ...}).
func IsUIShape(raw map[string]interface{}) bool {
	_, hasLib := raw["pc_lib"]
	_, hasPlaylist := raw["playlist"]
	return hasLib && !hasPlaylist
}

// ConvertUIShape translates a flat pc_* record into an engine-shaped
// Payload, following the original UI's field mapping table.
func ConvertUIShape(flat map[string]interface{}) models.Payload {
	list := func(key string) []string {
		raw, _ := flat[key].(string)
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	boolOf := func(key string) bool {
		b, _ := flat[key].(bool)
		return b
	}
	intOf := func(key string, def int) int {
		switch v := flat[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	floatOf := func(key string, def float64) float64 {
		switch v := flat[key].(type) {
		case float64:
			return v
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	strOf := func(key string) string {
		s, _ := flat[key].(string)
		return s
	}

	label := strOf("pc_seed_mode_label")
	seedMode, ok := seedModeLabels[label]
	if !ok {
		seedMode = models.SeedModeHistory
	}

	fallback := strOf("pc_seed_fallback_mode")
	if fallback == "" {
		fallback = "history"
	}

	lib := strOf("pc_lib")
	if lib == "" {
		lib = "Music"
	}

	return models.Payload{
		Library: models.LibraryConfig{
			MusicLibrary: lib,
		},
		Playlist: models.Preset{
			CustomTitle:           strOf("pc_custom_title"),
			ExcludePlayedDays:     intOf("pc_exclude_days", 3),
			HistoryLookbackDays:   intOf("pc_lookback_days", 30),
			MaxTracks:             intOf("pc_max_tracks", 50),
			SonicSimilarLimit:     intOf("pc_sonic_limit", 20),
			HistoricalRatio:       floatOf("pc_hist_ratio", 0.3),
			ExploitWeight:         floatOf("pc_explore_exploit", 0.7),
			UseTimePeriods:        boolOf("pc_use_periods"),
			MinRating: models.MinRating{
				Track:  floatOf("pc_min_track", 7),
				Album:  floatOf("pc_min_album", 0),
				Artist: floatOf("pc_min_artist", 0),
			},
			AllowUnrated:          boolOf("pc_allow_unrated"),
			MinPlayCount:          intOf("pc_min_play_count", -1),
			MaxPlayCount:          intOf("pc_max_play_count", -1),
			MinYear:               intOf("pc_min_year", 0),
			MaxYear:               intOf("pc_max_year", 0),
			MinDurationSec:        intOf("pc_min_duration", 0),
			MaxDurationSec:        intOf("pc_max_duration", 0),
			RecentlyAddedDays:     intOf("pc_recent_days", 0),
			RecentlyAddedWeight:   floatOf("pc_recent_weight", 1.0),
			MaxTracksPerArtist:    intOf("pc_max_artist", 0),
			MaxTracksPerAlbum:     intOf("pc_max_album", 0),
			HistoryMinRating:      floatOf("pc_hist_min_rating", 0),
			HistoryMaxPlayCount:   intOf("pc_hist_max_play_count", -1),
			SeedMode:              seedMode,
			SeedFallbackMode:      fallback,
			NewVsLegacySlider:     0.5,
			GenreStrict:           boolOf("pc_genre_strict"),
			AllowOffGenreFraction: floatOf("pc_allow_off_genre", 0.2),
			SeedTrackKeys:         list("pc_seed_tracks"),
			SeedArtistNames:       list("pc_seed_artists"),
			SeedPlaylistNames:     list("pc_seed_playlists"),
			SeedCollectionNames:   list("pc_seed_collections"),
			GenreSeeds:            list("pc_seed_genres"),
			IncludeCollections:    list("pc_include_collections"),
			ExcludeCollections:    list("pc_exclude_collections"),
			ExcludeGenres:         list("pc_exclude_genres"),
			DeepDiveTarget:        intOf("pc_deep_dive_target", 15),
		},
	}
}
