package gifenc

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
)

// alphaThreshold splits partially transparent pixels into the GIF's binary
// transparency model: below the threshold a pixel is fully transparent,
// at or above it the pixel is opaque.
const alphaThreshold = 0x80

// palettize converts a bitmap to a paletted image with a local palette.
// Bitmaps with at most 256 distinct quantized colors get an exact palette;
// richer bitmaps are mapped onto Plan9 by nearest color, undithered.
func palettize(img *image.NRGBA) *image.Paletted {
	if dst, ok := exactPaletted(img); ok {
		return dst
	}
	return fallbackPaletted(img)
}

// exactPaletted builds a first-use-ordered palette while assigning pixel
// indices in one pass. Returns false when the bitmap needs more than 256
// palette entries.
func exactPaletted(img *image.NRGBA) (*image.Paletted, bool) {
	b := img.Bounds()

	var pal color.Palette
	index := make(map[color.NRGBA]uint8)
	transparent := -1

	dst := image.NewPaletted(b, nil)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			off := img.PixOffset(x, y)
			c := color.NRGBA{
				R: img.Pix[off],
				G: img.Pix[off+1],
				B: img.Pix[off+2],
				A: img.Pix[off+3],
			}

			var idx uint8
			if c.A < alphaThreshold {
				if transparent < 0 {
					if len(pal) == 256 {
						return nil, false
					}
					transparent = len(pal)
					pal = append(pal, color.NRGBA{})
				}
				idx = uint8(transparent)
			} else {
				c.A = 0xFF
				stored, ok := index[c]
				if !ok {
					if len(pal) == 256 {
						return nil, false
					}
					stored = uint8(len(pal))
					pal = append(pal, c)
					index[c] = stored
				}
				idx = stored
			}

			dst.Pix[dst.PixOffset(x, y)] = idx
		}
	}

	dst.Palette = pal
	return dst, true
}

// fallbackPaletted maps the bitmap onto the Plan9 palette with index 0
// reserved for transparency. No dithering: pixel art wants hard edges.
func fallbackPaletted(img *image.NRGBA) *image.Paletted {
	b := img.Bounds()

	pal := make(color.Palette, 0, 256)
	pal = append(pal, color.NRGBA{})
	pal = append(pal, palette.Plan9[:255]...)

	dst := image.NewPaletted(b, pal)
	draw.Draw(dst, b, thresholdAlpha(img), b.Min, draw.Src)
	return dst
}

// thresholdAlpha snaps every pixel to fully transparent or fully opaque so
// the nearest-color mapping above cannot smear partial alpha into a dark
// palette entry.
func thresholdAlpha(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src := img.PixOffset(x, y)
			dst := out.PixOffset(x, y)
			if img.Pix[src+3] < alphaThreshold {
				continue // NewNRGBA zero value is already transparent
			}
			out.Pix[dst] = img.Pix[src]
			out.Pix[dst+1] = img.Pix[src+1]
			out.Pix[dst+2] = img.Pix[src+2]
			out.Pix[dst+3] = 0xFF
		}
	}
	return out
}
