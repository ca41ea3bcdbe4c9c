package publish

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWrapTitle_ShortTitleIsSingleLine(t *testing.T) {
	lines := wrapTitle("Short Mix", 28)
	if len(lines) != 1 || lines[0] != "Short Mix" {
		t.Fatalf("expected a single unmodified line, got %+v", lines)
	}
}

func TestWrapTitle_LongTitleWraps(t *testing.T) {
	title := "This Is A Very Long Playlist Title That Needs Wrapping Across Lines"
	lines := wrapTitle(title, 28)
	if len(lines) < 2 {
		t.Fatalf("expected the long title to wrap across multiple lines, got %+v", lines)
	}
	for _, line := range lines {
		if len(line) > 28 && !strings.Contains(line, " ") {
			t.Fatalf("expected no line to exceed maxChars for single words, got %q (%d chars)", line, len(line))
		}
	}
}

func TestSplitWords(t *testing.T) {
	words := splitWords("one  two three")
	want := []string{"one", "two", "three"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %+v", len(want), words)
	}
	for i, w := range want {
		if words[i] != w {
			t.Fatalf("expected %q at index %d, got %q", w, i, words[i])
		}
	}
}

func TestRenderCover_Dimensions(t *testing.T) {
	img := renderCover("Test Playlist", color.RGBA{R: 10, G: 20, B: 30, A: 255}, time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC))
	bounds := img.Bounds()
	if bounds.Dx() != coverSize || bounds.Dy() != coverSize {
		t.Fatalf("expected a %dx%d cover, got %dx%d", coverSize, coverSize, bounds.Dx(), bounds.Dy())
	}
}

func TestWriteTempCover_CreatesPNGFile(t *testing.T) {
	dir := t.TempDir()
	path, err := writeTempCover(dir, "My Mix", color.RGBA{R: 1, G: 2, B: 3, A: 255}, time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected cover to be written under %s, got %s", dir, path)
	}
	if !strings.HasPrefix(filepath.Base(path), "thumb_") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected a thumb_<uuid>.png filename, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the cover file to exist on disk: %v", err)
	}
}
