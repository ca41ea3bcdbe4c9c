package seeds

import (
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/playlist-engine/pkg/models"
)

func TestFindExact(t *testing.T) {
	candidates := []models.Artist{{Name: "The Band"}, {Name: "Other"}}
	a, ok := findExact(candidates, "The Band")
	if !ok || a.Name != "The Band" {
		t.Fatalf("expected exact match, got %+v ok=%v", a, ok)
	}
}

func TestFindNormalized(t *testing.T) {
	candidates := []models.Artist{{Name: "The Band"}}
	a, ok := findNormalized(candidates, "theband")
	if !ok || a.Name != "The Band" {
		t.Fatalf("expected normalized match, got %+v ok=%v", a, ok)
	}
}

func TestFindNormalized_NoMatch(t *testing.T) {
	candidates := []models.Artist{{Name: "The Band"}}
	_, ok := findNormalized(candidates, "totally different")
	if ok {
		t.Fatalf("expected no match")
	}
}
