// Package gifenc encodes frame sequences as animated GIFs.
//
// Input frames carry decoded bitmaps, content keys, and durations.
// Consecutive frames with the same content key are coalesced into a single
// output frame whose delay is the sum of the run's durations; the sum is
// converted to GIF centiseconds once, after coalescing, so rounding error
// does not accumulate across a run.
//
// Each output frame gets its own local palette. When a bitmap uses at most
// 256 distinct colors (transparency included) the palette is exact;
// otherwise the encoder falls back to the Plan9 palette with a transparent
// slot in front.
package gifenc
