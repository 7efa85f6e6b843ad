// Package imaging cleans raster uploads ahead of OCR. Phone photos and
// low-quality scans need contrast and sharpness normalization before text
// recognition; the output is lossless PNG so no further compression
// artifacts are introduced.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage is returned when the input cannot be decoded as a
// raster image.
var ErrInvalidImage = errors.New("invalid image bytes")

// Normalized uploads replace the declared metadata with these values.
const (
	NormalizedFilename    = "preprocessed.png"
	NormalizedContentType = "image/png"
)

const (
	claheClipLimit = 2.0
	claheTileGrid  = 8
	denoiseH       = 10
	unsharpSigma   = 1.0
)

// Normalize decodes imageBytes, converts to grayscale, equalizes local
// contrast, denoises, sharpens, and re-encodes as PNG. The pipeline is
// deterministic and holds no state across calls.
func Normalize(imageBytes []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	gray := toGray(src)
	gray = equalizeContrast(gray, claheClipLimit, claheTileGrid, claheTileGrid)
	gray = denoise(gray, denoiseH)
	gray = unsharpMask(gray, unsharpSigma, 1.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// toGray converts any raster to 8-bit grayscale. color.GrayModel applies
// the standard luma weights (0.299, 0.587, 0.114).
func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
