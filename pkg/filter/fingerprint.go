// Package filter implements the static-filter predicate, fuzzy-duplicate
// detection, explore/exploit ranking, and the per-artist/per-album cap
// walk that together turn a raw candidate pool into a final playlist.
package filter

import (
	"regexp"
	"strings"
)

var (
	bracketedRe  = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	featRe       = regexp.MustCompile(`(?i)\b(feat\.?|featuring|ft\.?)\b.*$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
)

// Fingerprint reduces a track title to a normalized form so that
// "Song (Remastered 2011)" and "Song" collide as the same fuzzy
// duplicate: lower-cased, bracketed/parenthetical suffixes and
// feat./ft. credits stripped, then collapsed to alphanumerics.
func Fingerprint(artistName, title string) string {
	t := strings.ToLower(title)
	t = bracketedRe.ReplaceAllString(t, "")
	t = featRe.ReplaceAllString(t, "")
	t = nonAlnumRe.ReplaceAllString(t, "")
	a := nonAlnumRe.ReplaceAllString(strings.ToLower(artistName), "")
	return a + "|" + t
}
