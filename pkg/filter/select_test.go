package filter

import (
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

func TestSelect_ArtistCap(t *testing.T) {
	ranked := []models.Track{
		{ID: "1", ArtistID: "x"},
		{ID: "2", ArtistID: "x"},
		{ID: "3", ArtistID: "x"},
		{ID: "4", ArtistID: "y"},
	}
	preset := models.Preset{MaxTracks: 10, MaxTracksPerArtist: 2}

	out := Select(ranked, nil, preset)
	count := 0
	for _, t := range out {
		if t.ArtistID == "x" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected at most 2 tracks from artist x, got %d in %+v", count, out)
	}
	if len(out) != 3 {
		t.Fatalf("expected 2 from x + 1 from y = 3, got %d", len(out))
	}
}

func TestSelect_AlbumCap(t *testing.T) {
	ranked := []models.Track{
		{ID: "1", AlbumID: "a"},
		{ID: "2", AlbumID: "a"},
		{ID: "3", AlbumID: "b"},
	}
	preset := models.Preset{MaxTracks: 10, MaxTracksPerAlbum: 1}

	out := Select(ranked, nil, preset)
	if len(out) != 2 {
		t.Fatalf("expected one per album (2 albums), got %d: %+v", len(out), out)
	}
}

func TestSelect_GenreStrictQuota(t *testing.T) {
	ranked := []models.Track{
		{ID: "on1"}, {ID: "off1"}, {ID: "off2"}, {ID: "on2"}, {ID: "off3"},
	}
	genres := map[string][]string{
		"on1": {"Rock"}, "on2": {"Rock"},
		"off1": {"Jazz"}, "off2": {"Jazz"}, "off3": {"Jazz"},
	}
	preset := models.Preset{
		MaxTracks:             10,
		GenreStrict:           true,
		GenreSeeds:            []string{"Rock"},
		AllowOffGenreFraction: 0.2,
	}

	out := Select(ranked, genres, preset)
	offCount := 0
	for _, tr := range out {
		if genres[tr.ID][0] != "Rock" {
			offCount++
		}
	}
	if offCount > 2 {
		t.Fatalf("expected off-genre count capped at floor(10*0.2)=2, got %d", offCount)
	}
}

func TestSelect_StopsAtMaxTracks(t *testing.T) {
	ranked := make([]models.Track, 20)
	for i := range ranked {
		ranked[i] = models.Track{ID: string(rune('a' + i))}
	}
	preset := models.Preset{MaxTracks: 5}

	out := Select(ranked, nil, preset)
	if len(out) != 5 {
		t.Fatalf("expected exactly max_tracks=5, got %d", len(out))
	}
}
