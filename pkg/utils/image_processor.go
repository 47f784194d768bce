package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"lapak-storefront/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Max widths for processed images
const (
	ProductImageMaxWidth  = 2000
	EvidencePhotoMaxWidth = 1280
)

// ProcessImage decodes an upload, shrinks it to maxWidth and re-encodes it as
// WebP, falling back to JPEG. It returns the bytes and their content type.
func ProcessImage(r io.Reader, filename string, maxWidth int) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Get().Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	// Quality: 85 is excellent sweet spot. Lossless: false.
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		logger.Warn().Err(err).Str("file", filename).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImage verifies simple content type
func IsImage(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}
