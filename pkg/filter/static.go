package filter

import (
	"context"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/genre"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

// Reason names why a candidate was rejected, for progress logging.
type Reason string

const (
	Accepted            Reason = ""
	RejectDuplicate     Reason = "duplicate"
	RejectExcludedKey   Reason = "excluded_key"
	RejectRating        Reason = "rating"
	RejectPlayCount     Reason = "play_count"
	RejectDuration      Reason = "duration"
	RejectYear          Reason = "year"
	RejectInclusion     Reason = "inclusion"
	RejectExcludeColl   Reason = "exclude_collections"
	RejectExcludeGenre  Reason = "exclude_genres"
	RejectFingerprint   Reason = "fuzzy_duplicate"
)

// Checker evaluates candidates against a Preset's static constraints, in
// the exact order the original harvester applied them: duplicate id,
// excluded history key, rating floors (track/album/artist), play-count
// bounds, duration bounds, year bounds, inclusion collections, exclusion
// collections, exclusion genres. Artist metadata is fetched lazily, and
// only when a collection filter, genre filter, or the artist rating floor
// is actually configured.
type Checker struct {
	client       library.Client
	caches       *library.RunCaches
	mapper       *genre.Mapper
	preset       models.Preset
	excludedKeys map[string]bool

	seenKeys         map[string]bool
	seenFingerprints map[string]bool

	needsArtistMeta bool
}

// NewChecker builds a Checker for a single generation run. In
// strict_collection mode the include-collections gate is dropped: the
// expansion stage already drew every candidate from the named
// collections, so re-checking inclusion here would be redundant (exclude
// rules still apply).
func NewChecker(client library.Client, caches *library.RunCaches, mapper *genre.Mapper, preset models.Preset, excludedKeys map[string]bool) *Checker {
	if preset.SeedMode == models.SeedModeStrictCollection {
		preset.IncludeCollections = nil
	}
	needsArtist := len(preset.IncludeCollections) > 0 || len(preset.ExcludeCollections) > 0 || len(preset.ExcludeGenres) > 0
	return &Checker{
		client:           client,
		caches:           caches,
		mapper:           mapper,
		preset:           preset,
		excludedKeys:     excludedKeys,
		seenKeys:         make(map[string]bool),
		seenFingerprints: make(map[string]bool),
		needsArtistMeta:  needsArtist,
	}
}

// Check validates one candidate track/album pair, returning Accepted or
// the first reason it was rejected. A non-nil error means an upstream
// fetch failed; callers should log and skip the candidate rather than
// fail the whole run.
func (c *Checker) Check(ctx context.Context, t models.Track, album models.Album) (Reason, error) {
	if c.seenKeys[t.ID] {
		return RejectDuplicate, nil
	}
	if c.excludedKeys[t.ID] {
		return RejectExcludedKey, nil
	}

	if reason, err := c.checkRating(ctx, t, album); reason != Accepted || err != nil {
		return reason, err
	}

	if reason := c.checkPlayCount(t); reason != Accepted {
		return reason, nil
	}

	if reason := c.checkDuration(t); reason != Accepted {
		return reason, nil
	}

	if reason := c.checkYear(album); reason != Accepted {
		return reason, nil
	}

	if c.needsArtistMeta {
		meta, err := c.artistMeta(ctx, t.ArtistID)
		if err != nil {
			return Accepted, err
		}

		if len(c.preset.IncludeCollections) > 0 {
			if !anyOverlap(c.preset.IncludeCollections, album.Collections, meta.Collections) {
				return RejectInclusion, nil
			}
		}
		if len(c.preset.ExcludeCollections) > 0 {
			if anyOverlap(c.preset.ExcludeCollections, album.Collections, meta.Collections) {
				return RejectExcludeColl, nil
			}
		}
		if len(c.preset.ExcludeGenres) > 0 {
			trackGenres := c.normalizeGenres(t.Genres, album.Genres, meta.Genres)
			if anyOverlapCI(c.preset.ExcludeGenres, trackGenres) {
				return RejectExcludeGenre, nil
			}
		}
	}

	fp := Fingerprint(t.ArtistName, t.Title)
	if c.seenFingerprints[fp] {
		return RejectFingerprint, nil
	}

	c.seenKeys[t.ID] = true
	c.seenFingerprints[fp] = true
	return Accepted, nil
}

// checkRating gates a candidate against each configured rating floor
// independently — track, album, artist — never falling back to a
// different entity's rating when one is missing, matching
// passes_min_ratings: an unrated entity only passes when AllowUnrated is
// set, and a rated one must clear its own floor.
func (c *Checker) checkRating(ctx context.Context, t models.Track, album models.Album) (Reason, error) {
	if c.preset.MinRating.Track > 0 {
		if t.UserRating == nil {
			if !c.preset.AllowUnrated {
				return RejectRating, nil
			}
		} else if *t.UserRating < c.preset.MinRating.Track {
			return RejectRating, nil
		}
	}

	if c.preset.MinRating.Album > 0 {
		if album.UserRating == nil {
			if !c.preset.AllowUnrated {
				return RejectRating, nil
			}
		} else if *album.UserRating < c.preset.MinRating.Album {
			return RejectRating, nil
		}
	}

	if c.preset.MinRating.Artist > 0 {
		meta, err := c.artistMeta(ctx, t.ArtistID)
		if err != nil {
			return Accepted, err
		}
		if meta.UserRating == nil {
			if !c.preset.AllowUnrated {
				return RejectRating, nil
			}
		} else if *meta.UserRating < c.preset.MinRating.Artist {
			return RejectRating, nil
		}
	}

	return Accepted, nil
}

func (c *Checker) checkPlayCount(t models.Track) Reason {
	if c.preset.MinPlayCount >= 0 && t.ViewCount < c.preset.MinPlayCount {
		return RejectPlayCount
	}
	if c.preset.MaxPlayCount >= 0 && t.ViewCount > c.preset.MaxPlayCount {
		return RejectPlayCount
	}
	return Accepted
}

func (c *Checker) checkDuration(t models.Track) Reason {
	sec := t.DurationSeconds()
	if c.preset.MinDurationSec > 0 && sec < c.preset.MinDurationSec {
		return RejectDuration
	}
	if c.preset.MaxDurationSec > 0 && sec > c.preset.MaxDurationSec {
		return RejectDuration
	}
	return Accepted
}

func (c *Checker) checkYear(album models.Album) Reason {
	year := album.ReleaseYear()
	if year == 0 {
		return Accepted
	}
	if c.preset.MinYear > 0 && year < c.preset.MinYear {
		return RejectYear
	}
	if c.preset.MaxYear > 0 && year > c.preset.MaxYear {
		return RejectYear
	}
	return Accepted
}

func (c *Checker) artistMeta(ctx context.Context, artistID string) (library.ArtistMeta, error) {
	if artistID == "" {
		return library.ArtistMeta{}, nil
	}
	if meta, ok := c.caches.GetArtistMeta(artistID); ok {
		return meta, nil
	}
	artist, err := c.client.FetchArtist(ctx, artistID)
	if err != nil {
		return library.ArtistMeta{}, err
	}
	meta := library.ArtistMeta{Collections: artist.Collections, Genres: artist.Genres, UserRating: artist.UserRating}
	c.caches.PutArtistMeta(artistID, meta)
	return meta, nil
}

func (c *Checker) normalizeGenres(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	if c.mapper == nil {
		return all
	}
	return c.mapper.SimplifyAll(all)
}

func anyOverlap(wanted []string, sets ...[]string) bool { return anyOverlapCI(wanted, flatten(sets)) }

func anyOverlapCI(wanted []string, have []string) bool {
	wantSet := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		wantSet[strings.ToLower(strings.TrimSpace(w))] = true
	}
	for _, h := range have {
		if wantSet[strings.ToLower(strings.TrimSpace(h))] {
			return true
		}
	}
	return false
}

func flatten(sets [][]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
