// Package image renders small raster images as half-block text so cards can
// show a thumbnail in the terminal.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"
)

// MaxFileSize is the largest image file Preview will decode.
const MaxFileSize int64 = 5 << 20

var extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImageFile reports whether path has an image extension Preview can decode.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ToString scales img to width columns and draws two pixel rows per line
// with the upper half block.
func ToString(width int, img image.Image) string {
	img = imaging.Resize(img, width, 0, imaging.Lanczos)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var line strings.Builder
		for x := range w {
			top, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			bottom := top
			if y+1 < h {
				bottom, _ = colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y+1))
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex())).
				Render("▀"))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// Preview decodes the image at path and renders it width columns wide.
func Preview(width int, path string) (string, error) {
	if width <= 0 {
		return "", fmt.Errorf("invalid preview width %d", width)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error getting file info: %w", err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("image %s is larger than %d bytes", path, MaxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return ToString(width, img), nil
}
