package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Crop extracts the rectangle r from img as a fresh NRGBA image.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r)
}

// FlipH mirrors img around its vertical axis.
func FlipH(img image.Image) *image.NRGBA {
	return imaging.FlipH(img)
}

// ScaleNearest enlarges img by an integer factor with nearest-neighbor
// sampling, keeping pixel-art edges hard. Factor 1 returns a normalized
// copy.
func ScaleNearest(img image.Image, factor int) (*image.NRGBA, error) {
	if factor < 1 {
		return nil, fmt.Errorf("scale factor must be >= 1, got %d", factor)
	}
	src := Normalize(img)
	if factor == 1 {
		return src, nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, nil
}
