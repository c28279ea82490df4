package testutil

import (
	"image"
	"image/color"
)

// Solid color fixtures shared by tests across packages.
//
// Content keys are derived from exact pixel values, so tests that pin a key
// or inspect a GIF palette need byte-identical inputs. Building the bitmaps
// here keeps those expectations stable across packages.
var (
	Red   = color.NRGBA{R: 0xFF, A: 0xFF}
	Green = color.NRGBA{G: 0xFF, A: 0xFF}
	Blue  = color.NRGBA{B: 0xFF, A: 0xFF}
)

// Solid returns a w by h bitmap with every pixel set to c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Quad returns the 2x2 probe bitmap: red and green across the top, blue and
// a fully transparent pixel across the bottom. Several tests pin its content
// key, so the pixel values must not change.
func Quad() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, Red)
	img.SetNRGBA(1, 0, Green)
	img.SetNRGBA(0, 1, Blue)
	img.SetNRGBA(1, 1, color.NRGBA{})
	return img
}

// StripSheet builds a horizontal sprite strip with one solid cell per color.
// Cell i spans x in [i*cellW, (i+1)*cellW).
func StripSheet(cellW, cellH int, colors ...color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cellW*len(colors), cellH))
	for i, c := range colors {
		for y := 0; y < cellH; y++ {
			for x := 0; x < cellW; x++ {
				img.SetNRGBA(i*cellW+x, y, c)
			}
		}
	}
	return img
}
