package imaging

import "image"

// equalizeContrast applies contrast-limited adaptive histogram
// equalization: the image is split into a tilesX x tilesY grid, each tile
// gets a clipped, equalized intensity mapping, and every pixel is
// remapped by bilinear interpolation between the four surrounding tile
// mappings. Clipping the per-tile histogram keeps near-uniform regions
// from being blown up into noise.
func equalizeContrast(src *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return src
	}
	if tilesX > w {
		tilesX = w
	}
	if tilesY > h {
		tilesY = h
	}

	tileW := (w + tilesX - 1) / tilesX
	tileH := (h + tilesY - 1) / tilesY

	// Per-tile lookup tables.
	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := x0+tileW, y0+tileH
			if x1 > w {
				x1 = w
			}
			if y1 > h {
				y1 = h
			}
			luts[ty*tilesX+tx] = tileLUT(src, x0, y0, x1, y1, clipLimit)
		}
	}

	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		// Position of the pixel relative to tile centers, expressed as a
		// fractional tile index.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(fy)
		if fy < 0 {
			fy, ty0 = 0, 0
		}
		ty1 := ty0 + 1
		if ty1 > tilesY-1 {
			ty1 = tilesY - 1
		}
		if ty0 > tilesY-1 {
			ty0 = tilesY - 1
		}
		wy := fy - float64(ty0)

		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(fx)
			if fx < 0 {
				fx, tx0 = 0, 0
			}
			tx1 := tx0 + 1
			if tx1 > tilesX-1 {
				tx1 = tilesX - 1
			}
			if tx0 > tilesX-1 {
				tx0 = tilesX - 1
			}
			wx := fx - float64(tx0)

			v := src.Pix[y*src.Stride+x]
			tl := float64(luts[ty0*tilesX+tx0][v])
			tr := float64(luts[ty0*tilesX+tx1][v])
			bl := float64(luts[ty1*tilesX+tx0][v])
			br := float64(luts[ty1*tilesX+tx1][v])

			top := tl + (tr-tl)*wx
			bot := bl + (br-bl)*wx
			dst.Pix[y*dst.Stride+x] = clampU8(top + (bot-top)*wy)
		}
	}
	return dst
}

// tileLUT builds the clipped equalization mapping for one tile.
func tileLUT(src *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [256]uint8 {
	var hist [256]int
	for y := y0; y < y1; y++ {
		row := src.Pix[y*src.Stride:]
		for x := x0; x < x1; x++ {
			hist[row[x]]++
		}
	}

	area := (x1 - x0) * (y1 - y0)
	var lut [256]uint8
	if area == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	// Clip the histogram and redistribute the excess evenly.
	clip := int(clipLimit * float64(area) / 256.0)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}
	share := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	scale := 255.0 / float64(area)
	cdf := 0
	for i := range hist {
		cdf += hist[i]
		lut[i] = clampU8(float64(cdf) * scale)
	}
	return lut
}
