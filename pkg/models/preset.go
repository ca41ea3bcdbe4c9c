package models

// SeedMode is the tagged-union discriminator for expansion strategy
// dispatch (see pkg/expand).
type SeedMode string

const (
	SeedModeAuto             SeedMode = ""
	SeedModeHistory          SeedMode = "history"
	SeedModeGenre            SeedMode = "genre"
	SeedModeSonicAlbumMix    SeedMode = "sonic_album_mix"
	SeedModeSonicArtistMix   SeedMode = "sonic_artist_mix"
	SeedModeSonicCombo       SeedMode = "sonic_combo"
	SeedModeTrackSonic       SeedMode = "track_sonic"
	SeedModeSonicHistory     SeedMode = "sonic_history"
	SeedModeSonicJourney     SeedMode = "sonic_journey"
	SeedModeAlbumEchoes      SeedMode = "album_echoes"
	SeedModeStrictCollection SeedMode = "strict_collection"
)

// MinRating holds per-entity-level rating floors.
type MinRating struct {
	Track  float64 `json:"track"`
	Album  float64 `json:"album"`
	Artist float64 `json:"artist"`
}

// LibraryConfig carries the Library Server connection details. The json
// tag stays "plex" to remain wire-compatible with presets produced by the
// configuration UI this engine consumes.
type LibraryConfig struct {
	URL           string `json:"url"`
	Token         string `json:"token"`
	MusicLibrary  string `json:"music_library"`
}

// Preset is the single declarative record that drives a generation run.
type Preset struct {
	SeedMode SeedMode `json:"seed_mode"`

	MaxTracks int `json:"max_tracks"`

	HistoryLookbackDays int `json:"history_lookback_days"`
	ExcludePlayedDays   int `json:"exclude_played_days"`

	SonicSimilarLimit int `json:"sonic_similar_limit"`

	HistoricalRatio float64 `json:"historical_ratio"`
	ExploitWeight   float64 `json:"exploit_weight"`

	RecentlyAddedDays    int     `json:"recently_added_days"`
	RecentlyAddedWeight  float64 `json:"recently_added_weight"`

	MinRating    MinRating `json:"min_rating"`
	AllowUnrated bool      `json:"allow_unrated"`

	MinPlayCount int `json:"min_play_count"`
	MaxPlayCount int `json:"max_play_count"`

	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`

	MinDurationSec int `json:"min_duration_sec"`
	MaxDurationSec int `json:"max_duration_sec"`

	MaxTracksPerArtist int `json:"max_tracks_per_artist"`
	MaxTracksPerAlbum  int `json:"max_tracks_per_album"`

	HistoryMinRating     float64 `json:"history_min_rating"`
	HistoryMaxPlayCount  int     `json:"history_max_play_count"`

	IncludeCollections []string `json:"include_collections"`
	ExcludeCollections []string `json:"exclude_collections"`
	ExcludeGenres      []string `json:"exclude_genres"`

	GenreSeeds            []string `json:"genre_seeds"`
	GenreStrict           bool     `json:"genre_strict"`
	AllowOffGenreFraction float64  `json:"allow_off_genre_fraction"`

	SeedTrackKeys       []string `json:"seed_track_keys"`
	SeedArtistNames     []string `json:"seed_artist_names"`
	SeedPlaylistNames   []string `json:"seed_playlist_names"`
	SeedCollectionNames []string `json:"seed_collection_names"`

	SonicSmoothing bool   `json:"sonic_smoothing"`
	UseTimePeriods bool   `json:"use_time_periods"`
	CustomTitle    string `json:"custom_title,omitempty"`

	DeepDiveTarget int `json:"deep_dive_target"`

	SeedFallbackMode string `json:"seed_fallback_mode"`

	NewVsLegacySlider float64 `json:"new_vs_legacy_slider"`

	// GenreMappingOverridesEnabled turns on genre normalization (pkg/genre)
	// for this run. Off by default so undecorated presets behave exactly
	// as spec.md describes.
	GenreMappingOverridesEnabled bool `json:"genre_mapping_overrides_enabled,omitempty"`

	// RandomSeed overrides the process-level random seed for this run.
	RandomSeed *int64 `json:"random_seed,omitempty"`
}

// Payload is the "engine shape" document accepted on stdin or loaded from
// the preset store.
type Payload struct {
	Library  LibraryConfig `json:"plex"`
	Playlist Preset        `json:"playlist"`
}

// Defaults applies the fallback values the original harvester used when a
// field is left at its JSON zero value.
func (p *Preset) Defaults() {
	if p.MaxTracks <= 0 {
		p.MaxTracks = 50
	}
	if p.HistoryLookbackDays <= 0 {
		p.HistoryLookbackDays = 30
	}
	if p.ExcludePlayedDays <= 0 {
		p.ExcludePlayedDays = 3
	}
	if p.SonicSimilarLimit <= 0 {
		p.SonicSimilarLimit = 20
	}
	if p.SeedFallbackMode == "" {
		p.SeedFallbackMode = "history"
	}
	if p.NewVsLegacySlider == 0 {
		p.NewVsLegacySlider = 0.5
	}
	if p.DeepDiveTarget <= 0 {
		p.DeepDiveTarget = 15
	}
	if p.RecentlyAddedWeight == 0 {
		p.RecentlyAddedWeight = 1.0
	}
}
