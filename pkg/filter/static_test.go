package filter

import (
	"context"
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/library"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

type fakeClient struct {
	library.Client
	artists map[string]models.Artist
}

func (f *fakeClient) FetchArtist(ctx context.Context, id string) (models.Artist, error) {
	return f.artists[id], nil
}

func ratingPtr(v float64) *float64 { return &v }

func TestChecker_RejectOrder(t *testing.T) {
	preset := models.Preset{
		MinRating:    models.MinRating{Track: 5},
		MinPlayCount: -1,
		MaxPlayCount: -1,
	}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song", UserRating: ratingPtr(1)}
	album := models.Album{ID: "a1"}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectRating {
		t.Fatalf("expected rating rejection, got %q", reason)
	}
}

func TestChecker_DuplicateAfterAccept(t *testing.T) {
	preset := models.Preset{MinPlayCount: -1, MaxPlayCount: -1, AllowUnrated: true}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song"}
	album := models.Album{ID: "a1"}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{})

	reason, err := c.Check(context.Background(), track, album)
	if err != nil || reason != Accepted {
		t.Fatalf("expected first pass accepted, got %q err=%v", reason, err)
	}

	reason, err = c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectDuplicate {
		t.Fatalf("expected duplicate rejection, got %q", reason)
	}
}

func TestChecker_ExcludedKey(t *testing.T) {
	preset := models.Preset{MinPlayCount: -1, MaxPlayCount: -1, AllowUnrated: true}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song"}
	album := models.Album{ID: "a1"}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{"t1": true})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectExcludedKey {
		t.Fatalf("expected excluded_key rejection, got %q", reason)
	}
}

func TestChecker_PlayCountBounds(t *testing.T) {
	preset := models.Preset{MinPlayCount: 2, MaxPlayCount: 10, AllowUnrated: true}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song", ViewCount: 1}
	album := models.Album{ID: "a1"}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectPlayCount {
		t.Fatalf("expected play_count rejection, got %q", reason)
	}
}

func TestFingerprint_CollidesOnRemaster(t *testing.T) {
	a := Fingerprint("Artist", "Song (Remastered 2011)")
	b := Fingerprint("Artist", "Song")
	if a != b {
		t.Fatalf("expected fingerprints to collide: %q vs %q", a, b)
	}
}

func TestChecker_AlbumRatingGateIndependentOfTrack(t *testing.T) {
	preset := models.Preset{
		MinRating:    models.MinRating{Album: 8},
		MinPlayCount: -1,
		MaxPlayCount: -1,
		AllowUnrated: true,
	}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song", UserRating: ratingPtr(9)}
	album := models.Album{ID: "a1", UserRating: ratingPtr(3)}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectRating {
		t.Fatalf("expected the low album rating to reject independently of the high track rating, got %q", reason)
	}
}

func TestChecker_ArtistRatingGateFetchesArtist(t *testing.T) {
	preset := models.Preset{
		MinRating:    models.MinRating{Artist: 8},
		MinPlayCount: -1,
		MaxPlayCount: -1,
		AllowUnrated: true,
	}
	track := models.Track{ID: "t1", ArtistID: "art1", ArtistName: "Artist", Title: "Song"}
	album := models.Album{ID: "a1"}

	client := &fakeClient{artists: map[string]models.Artist{
		"art1": {ID: "art1", UserRating: ratingPtr(2)},
	}}

	c := NewChecker(client, library.NewRunCaches(), nil, preset, map[string]bool{})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectRating {
		t.Fatalf("expected the low artist rating to reject, got %q", reason)
	}
}

func TestChecker_UnratedRejectedWithoutAllowUnrated(t *testing.T) {
	preset := models.Preset{
		MinRating:    models.MinRating{Track: 5},
		MinPlayCount: -1,
		MaxPlayCount: -1,
		AllowUnrated: false,
	}
	track := models.Track{ID: "t1", ArtistName: "Artist", Title: "Song"}
	album := models.Album{ID: "a1"}

	c := NewChecker(&fakeClient{}, library.NewRunCaches(), nil, preset, map[string]bool{})
	reason, err := c.Check(context.Background(), track, album)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != RejectRating {
		t.Fatalf("expected an unrated track to reject when allow_unrated=false, got %q", reason)
	}
}
