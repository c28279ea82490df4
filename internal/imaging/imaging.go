package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// ContentTypePNG is the media type of every stored bitmap payload.
const ContentTypePNG = "image/png"

// Normalize converts src to non-premultiplied 8-bit RGBA with bounds
// anchored at the origin. Sub-images keep their pixel content but lose
// their offset, so a cropped cell and a standalone copy are identical.
func Normalize(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// EncodePNG serializes img as PNG bytes for storage.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG parses stored PNG bytes back into an image.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
