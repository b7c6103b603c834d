package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Embedded images must match the export pipeline's 0.98 JPEG
	// quality.
	qualityEmbed = 98
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// OptimizeImage converts an image to JPEG, resized for the requested
// display variant ("thumb" or "medium").
// imageData: raw image bytes (PNG, JPEG, etc.)
// Returns optimized JPEG image bytes.
func OptimizeImage(imageData []byte, variant string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch variant {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Warn().Str("variant", variant).Msg("⚠️ Unknown display variant, defaulting to medium")
	}

	log.Debug().Str("format", format).Str("variant", variant).Msg("📸 Image decoded")
	return encodeJPEG(resizeToFit(img, maxDim), quality)
}

// EncodeForEmbedding re-encodes an image as a full-size JPEG at the
// export quality, ready for base64 embedding in a generated document.
func EncodeForEmbedding(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return encodeJPEG(img, qualityEmbed)
}

// resizeToFit scales img down so neither dimension exceeds maxDim,
// keeping the aspect ratio. Smaller images pass through untouched.
func resizeToFit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxDim
		newHeight = int(float64(height) * float64(maxDim) / float64(width))
	} else {
		newHeight = maxDim
		newWidth = int(float64(width) * float64(maxDim) / float64(height))
	}
	return imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
