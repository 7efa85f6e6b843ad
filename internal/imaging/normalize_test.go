package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// testImage renders a small synthetic "document": dark text-like strokes
// over an unevenly lit background.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Lighting gradient plus a few dark horizontal strokes.
			v := uint8(120 + 100*x/w)
			if y%8 < 2 && x%16 < 12 {
				v = 40
			}
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeReturnsDecodablePNGWithSameDimensions(t *testing.T) {
	src := testImage(64, 48)
	out, err := Normalize(encodePNG(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if format != "png" {
		t.Errorf("expected png output, got %s", format)
	}
	if got, want := decoded.Bounds(), src.Bounds(); got.Dx() != want.Dx() || got.Dy() != want.Dy() {
		t.Errorf("dimensions changed: got %v want %v", got, want)
	}
	if _, ok := decoded.(*image.Gray); !ok {
		t.Errorf("expected grayscale output, got %T", decoded)
	}
}

func TestNormalizeAcceptsJPEGInput(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(40, 30), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not decodable: %v", err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 30 {
		t.Errorf("unexpected dimensions: %v", decoded.Bounds())
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	in := encodePNG(t, testImage(32, 32))

	a, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Normalize(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated runs on the same input produced different bytes")
	}
}

func TestNormalizeRejectsUndecodableInput(t *testing.T) {
	for name, in := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not an image"),
		"pdf":     []byte("%PDF-1.4 not a raster"),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := Normalize(in)
			if !errors.Is(err, ErrInvalidImage) {
				t.Fatalf("expected ErrInvalidImage, got %v", err)
			}
			if out != nil {
				t.Error("expected no partial output")
			}
		})
	}
}

func TestEqualizeContrastSpreadsLowContrastInput(t *testing.T) {
	// A washed-out tile: all values in a narrow mid band.
	src := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.Pix[y*src.Stride+x] = uint8(118 + (x+y)%8)
		}
	}

	out := equalizeContrast(src, claheClipLimit, claheTileGrid, claheTileGrid)

	minV, maxV := out.Pix[0], out.Pix[0]
	for _, p := range out.Pix {
		if p < minV {
			minV = p
		}
		if p > maxV {
			maxV = p
		}
	}
	if int(maxV)-int(minV) <= 7 {
		t.Errorf("expected contrast to widen beyond input range, got [%d, %d]", minV, maxV)
	}
}

func TestGaussianBlurPreservesFlatRegions(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	out := gaussianBlur(src, unsharpSigma)
	for i, p := range out.Pix {
		if p != 200 {
			t.Fatalf("flat image changed at %d: got %d", i, p)
		}
	}
}
