package imaging

import (
	"image"
	"math"
)

const (
	patchRadius  = 3  // 7x7 comparison patches
	searchRadius = 10 // 21x21 search window
)

// denoise applies non-local-means denoising with filter strength h.
// Each pixel is replaced by a weighted average of pixels whose
// surrounding patches look similar, which suppresses sensor and scan
// noise without blurring text edges the way a plain Gaussian would.
//
// Patch distances are computed per search offset with an integral image
// over squared differences, so the cost is O(w*h) per offset rather than
// O(w*h*patch²).
func denoise(src *image.Gray, h float64) *image.Gray {
	w, ht := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || ht == 0 {
		return src
	}

	wsum := make([]float64, w*ht)
	vsum := make([]float64, w*ht)
	for i := 0; i < w*ht; i++ {
		// The reference patch always matches itself.
		wsum[i] = 1
		vsum[i] = float64(src.Pix[(i/w)*src.Stride+i%w])
	}

	h2 := h * h
	integral := make([]float64, (w+1)*(ht+1))

	for dy := -searchRadius; dy <= searchRadius; dy++ {
		for dx := -searchRadius; dx <= searchRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}

			// Overlap region where both (x,y) and (x+dx,y+dy) are inside.
			ox0, oy0 := 0, 0
			ox1, oy1 := w, ht
			if dx > 0 {
				ox1 = w - dx
			} else {
				ox0 = -dx
			}
			if dy > 0 {
				oy1 = ht - dy
			} else {
				oy0 = -dy
			}
			if ox0 >= ox1 || oy0 >= oy1 {
				continue
			}

			// Integral image of squared differences over the overlap,
			// indexed relative to (ox0, oy0).
			ow := ox1 - ox0
			oh := oy1 - oy0
			for x := 0; x <= ow; x++ {
				integral[x] = 0
			}
			for y := 0; y < oh; y++ {
				rowSum := 0.0
				srcRow := (oy0 + y) * src.Stride
				offRow := (oy0 + y + dy) * src.Stride
				for x := 0; x < ow; x++ {
					d := float64(src.Pix[srcRow+ox0+x]) - float64(src.Pix[offRow+ox0+x+dx])
					rowSum += d * d
					integral[(y+1)*(ow+1)+x+1] = integral[y*(ow+1)+x+1] + rowSum
				}
				integral[(y+1)*(ow+1)] = 0
			}

			for y := oy0; y < oy1; y++ {
				for x := ox0; x < ox1; x++ {
					// Patch window clamped to the overlap.
					a := max(x-patchRadius, ox0) - ox0
					b := min(x+patchRadius+1, ox1) - ox0
					c := max(y-patchRadius, oy0) - oy0
					d := min(y+patchRadius+1, oy1) - oy0

					sum := integral[d*(ow+1)+b] - integral[c*(ow+1)+b] -
						integral[d*(ow+1)+a] + integral[c*(ow+1)+a]
					dist := sum / float64((b-a)*(d-c))

					wt := math.Exp(-dist / h2)
					idx := y*w + x
					wsum[idx] += wt
					vsum[idx] += wt * float64(src.Pix[(y+dy)*src.Stride+x+dx])
				}
			}
		}
	}

	dst := image.NewGray(src.Rect)
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			dst.Pix[y*dst.Stride+x] = clampU8(vsum[idx] / wsum[idx])
		}
	}
	return dst
}
