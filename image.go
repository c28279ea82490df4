package pikov

import (
	"image"

	"github.com/roach88/pikov/internal/imaging"
)

// Image is a stored bitmap with its content key.
// Values are immutable snapshots: the pixel data behind a key never changes.
type Image struct {
	key         string
	contentType string
	contents    []byte
}

// Key returns the content key ("md5-" followed by the pixel digest).
func (img *Image) Key() string {
	return img.key
}

// ContentType returns the stored MIME type, image/png.
func (img *Image) ContentType() string {
	return img.contentType
}

// Contents returns the encoded image bytes as stored.
func (img *Image) Contents() []byte {
	return img.contents
}

// Decode parses the stored bytes back into a bitmap.
func (img *Image) Decode() (image.Image, error) {
	return imaging.DecodePNG(img.contents)
}
