// Package imaging provides the bitmap plumbing for the repository: pixel
// normalization, content-key hashing, PNG encoding, and the geometric
// transforms used by sprite-sheet import and GIF export.
//
// All identity decisions happen on normalized pixels. Normalize converts any
// image.Image to 8-bit non-premultiplied RGBA with the origin at (0,0), so
// the same artwork hashes to the same key no matter which Go image type or
// sub-image region it arrived in.
package imaging
