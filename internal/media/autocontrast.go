package media

import (
	"image"
	"image/color"
)

// Autocontrast remaps every color channel so its darkest value becomes 0 and its
// lightest 255. Channels with a single value are left as they are. Grayscale images
// stay grayscale; everything else is returned as NRGBA with alpha untouched.
func Autocontrast(src image.Image) image.Image {
	b := src.Bounds()

	if g, ok := src.(*image.Gray); ok {
		var hist [256]int
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				hist[g.GrayAt(x, y).Y]++
			}
		}
		lut := stretchLUT(hist)
		out := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.SetGray(x, y, color.Gray{Y: lut[g.GrayAt(x, y).Y]})
			}
		}
		return out
	}

	px := image.NewNRGBA(b)
	var hr, hg, hb [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			px.SetNRGBA(x, y, c)
			hr[c.R]++
			hg[c.G]++
			hb[c.B]++
		}
	}

	lr, lg, lb := stretchLUT(hr), stretchLUT(hg), stretchLUT(hb)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := px.NRGBAAt(x, y)
			px.SetNRGBA(x, y, color.NRGBA{R: lr[c.R], G: lg[c.G], B: lb[c.B], A: c.A})
		}
	}
	return px
}

func stretchLUT(hist [256]int) [256]uint8 {
	var lut [256]uint8
	lo, hi := 0, 255
	for lo < 256 && hist[lo] == 0 {
		lo++
	}
	for hi >= 0 && hist[hi] == 0 {
		hi--
	}

	if hi <= lo {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	scale := 255.0 / float64(hi-lo)
	offset := -float64(lo) * scale
	for i := range lut {
		v := int(float64(i)*scale + offset)
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		lut[i] = uint8(v)
	}
	return lut
}
