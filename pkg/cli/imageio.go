package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/picfx/pkg/stdimg"
)

// LoadImage decodes path into a pixel buffer. JPEG EXIF orientation is
// applied on load. The returned format is a lowercase name such as "png",
// "jpeg" or "webp".
func LoadImage(path string) (*stdimg.Buffer, string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return stdimg.FromImage(img), formatFromPath(path), nil
}

// SaveImage encodes buf to path, choosing the encoder from the extension.
// JPEG output uses quality (1-100).
func SaveImage(path string, buf *stdimg.Buffer, quality int) error {
	if buf == nil {
		return fmt.Errorf("nothing to save")
	}
	if err := imaging.Save(stdimg.ToNRGBA(buf), path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// formatFromPath names the container for path by extension.
func formatFromPath(path string) string {
	if f, err := imaging.FormatFromFilename(path); err == nil {
		return strings.ToLower(f.String())
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// ImageInfo returns a short summary line for the image.
func ImageInfo(buf *stdimg.Buffer, format string) string {
	if buf == nil {
		return "no image"
	}
	if format == "" {
		format = "unknown"
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), buf.Width(), buf.Height())
}
