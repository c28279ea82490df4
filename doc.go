// Package pikov stores pixel-art animations as a graph of frames in a
// single SQLite file.
//
// A repository holds three kinds of rows: images (PNG bitmaps addressed by
// a content key derived from their pixels), frames (an image shown for a
// duration, with a JSON property bag), and transitions (directed edges
// between frames). Playback is a random walk: from a frame, the next frame
// is drawn uniformly from its outgoing transition rows, so parallel edges
// weight their target proportionally.
//
// CONCEPTS:
//
// Content addressing:
// Image keys are computed from decoded pixels, not encoded bytes. Adding
// the same bitmap twice stores it once, whatever its source file was.
//
// Start frame:
// The repository tracks one optional start frame. The first frame ever
// inserted claims it; previews begin there unless told otherwise.
//
// Absorbing frames:
// A frame whose outgoing edges all point at itself traps the walk. The
// walk then repeats that frame until the duration bound stops it.
//
// TYPICAL FLOW:
//
// 1. Create or Open a repository file.
// 2. ImportClip slices a sprite sheet into frames chained by transitions.
// 3. AddTransition / Clip.AddMissingTransitions wire clips together.
// 4. Preview walks the graph into a Clip.
// 5. Clip.SaveGIF exports the walk as an animated GIF.
//
// All mutating and reading operations take a context and are safe for the
// single-process, single-writer use the file format assumes.
package pikov
