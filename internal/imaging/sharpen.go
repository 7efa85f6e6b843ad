package imaging

import (
	"image"
	"math"
)

// unsharpMask sharpens src by subtracting a Gaussian-blurred copy:
// out = amount*src - subtract*blur, clipped to [0, 255].
func unsharpMask(src *image.Gray, sigma, amount, subtract float64) *image.Gray {
	blurred := gaussianBlur(src, sigma)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := float64(src.Pix[y*src.Stride+x])
			b := float64(blurred.Pix[y*blurred.Stride+x])
			dst.Pix[y*dst.Stride+x] = clampU8(amount*s - subtract*b)
		}
	}
	return dst
}

// gaussianBlur applies a separable Gaussian kernel with the given sigma.
// Borders are handled by clamping sample coordinates to the image.
func gaussianBlur(src *image.Gray, sigma float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return src
	}

	radius := int(3*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	// Horizontal pass.
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				sx := x + i
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				acc += kernel[i+radius] * float64(src.Pix[y*src.Stride+sx])
			}
			tmp[y*w+x] = acc
		}
	}

	// Vertical pass.
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for i := -radius; i <= radius; i++ {
				sy := y + i
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				acc += kernel[i+radius] * tmp[sy*w+x]
			}
			dst.Pix[y*dst.Stride+x] = clampU8(acc)
		}
	}
	return dst
}
