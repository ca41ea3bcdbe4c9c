package publish

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	coverSize   = 1000
	coverMargin = 40
)

// renderCover paints a flat-color 1000x1000 square with the playlist
// title laid over it in a tiled bitmap font, the closest the ecosystem
// gets to Pillow's ImageDraw.text without a rasterizer dependency the
// rest of the pack never reaches for. The title sits top-right, wrapped
// at 15 chars and right-anchored line by line; the generation date
// stamps the bottom-left corner.
func renderCover(title string, bg color.RGBA, now time.Time) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, coverSize, coverSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	textColor := image.NewUniform(color.White)

	lines := wrapTitle(title, 15)
	lineHeight := face.Height + 6

	for i, line := range lines {
		width := font.MeasureString(face, line).Ceil()
		x := coverSize - coverMargin - width
		y := coverMargin + face.Ascent + i*lineHeight

		d := &font.Drawer{
			Dst:  img,
			Src:  textColor,
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(line)
	}

	dateStamp := now.Format("01/02/2006")
	d := &font.Drawer{
		Dst:  img,
		Src:  textColor,
		Face: face,
		Dot:  fixed.P(coverMargin, coverSize-coverMargin),
	}
	d.DrawString(dateStamp)

	return img
}

func wrapTitle(title string, maxChars int) []string {
	if len(title) <= maxChars {
		return []string{title}
	}

	var lines []string
	line := ""
	for _, word := range splitWords(title) {
		if len(line)+len(word)+1 > maxChars && line != "" {
			lines = append(lines, line)
			line = word
			continue
		}
		if line == "" {
			line = word
		} else {
			line = line + " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	word := ""
	for _, r := range s {
		if r == ' ' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
			continue
		}
		word += string(r)
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}

// writeTempCover renders and saves a cover PNG under dir, named
// thumb_<uuid>.png so concurrent runs never collide, returning the path
// for the caller to upload and then remove.
func writeTempCover(dir, title string, bg color.RGBA, now time.Time) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	path := dir + string(os.PathSeparator) + "thumb_" + id.String() + ".png"
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img := renderCover(title, bg, now)
	if err := png.Encode(f, img); err != nil {
		return "", err
	}
	return path, nil
}
