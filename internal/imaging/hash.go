package imaging

import (
	"crypto/md5"
	"encoding/hex"
	"image"
)

// KeyScheme prefixes every content key with the digest algorithm, so the
// file format can grow new schemes without ambiguity.
const KeyScheme = "md5-"

// Key computes the content address of an image: KeyScheme plus the hex MD5
// of the normalized pixels.
//
// The digest covers 4 bytes (R, G, B, A) per pixel, visiting columns left to
// right and pixels top to bottom within each column. This exact order is a
// file-format invariant: every implementation of the format must produce the
// same key for the same artwork. MD5 here is an addressing scheme, not a
// security boundary.
func Key(img image.Image) string {
	return KeyNRGBA(Normalize(img))
}

// KeyNRGBA computes the content address of an already normalized image.
// The image must have bounds anchored at the origin; use Normalize first
// when unsure.
func KeyNRGBA(img *image.NRGBA) string {
	h := md5.New()
	w := img.Rect.Dx()
	ht := img.Rect.Dy()
	for x := 0; x < w; x++ {
		for y := 0; y < ht; y++ {
			off := y*img.Stride + x*4
			h.Write(img.Pix[off : off+4])
		}
	}
	return KeyScheme + hex.EncodeToString(h.Sum(nil))
}
