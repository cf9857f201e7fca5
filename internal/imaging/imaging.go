// Package imaging normalizes reference images before they are uploaded.
// Browser uploads arrive as whatever the operator had on disk: huge phone
// photos, EXIF-rotated JPEGs, PNG screenshots. Normalize caps the width,
// fixes the orientation, strips metadata, and re-encodes as WebP so the
// upload stays small and predictable.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// maxWidth caps normalized reference images. Generation works from
	// composition and palette, not pixel density.
	maxWidth = 1280

	// quality is the WebP export quality for normalized images.
	quality = 82
)

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// Normalize re-encodes a reference image as metadata-free WebP, capped at
// maxWidth and auto-rotated per EXIF orientation. Images narrower than the
// cap keep their size. Returns an error when the bytes do not decode as an
// image.
func Normalize(original []byte) ([]byte, error) {
	decoded, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}
	width := decoded.Width()
	decoded.Close()

	if width > maxWidth {
		width = maxWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, width, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: resize: %w", err)
	}
	defer img.Close()

	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = quality
	params.Lossless = false
	params.StripMetadata = true

	buf, _, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export: %w", err)
	}
	return buf, nil
}
