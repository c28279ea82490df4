package gifenc

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"time"

	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/model"
)

// Frame is one playback step to encode: a decoded bitmap, the content key
// it was loaded under, and how long it stays on screen.
type Frame struct {
	Key      string
	Image    *image.NRGBA
	Duration time.Duration
}

// Options control the encoded output.
type Options struct {
	// Scale multiplies pixel dimensions by a whole factor using
	// nearest-neighbor sampling. Zero and one leave the size unchanged.
	Scale int

	// LoopCount follows image/gif semantics: 0 loops forever.
	LoopCount int
}

// Encode writes frames as an animated GIF.
//
// Consecutive frames sharing a content key collapse into one output frame
// whose delay is the run's summed duration. All frames must have identical
// dimensions.
func Encode(w io.Writer, frames []Frame, opts Options) error {
	if len(frames) == 0 {
		return model.NewEmptyInput("gif encode")
	}
	if opts.Scale < 0 {
		return model.NewInvalidState(fmt.Sprintf("gif scale must not be negative, got %d", opts.Scale))
	}

	runs := coalesce(frames)

	width := runs[0].frame.Image.Bounds().Dx()
	height := runs[0].frame.Image.Bounds().Dy()
	for i, r := range runs {
		b := r.frame.Image.Bounds()
		if b.Dx() != width || b.Dy() != height {
			return model.NewInvalidState(fmt.Sprintf(
				"gif frame %d is %dx%d, want %dx%d", i, b.Dx(), b.Dy(), width, height))
		}
	}

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(runs)),
		Delay:     make([]int, 0, len(runs)),
		Disposal:  make([]byte, 0, len(runs)),
		LoopCount: opts.LoopCount,
	}

	// A key can recur in non-consecutive runs; palettize it once.
	palettized := make(map[string]*image.Paletted, len(runs))

	for _, r := range runs {
		pi, ok := palettized[r.frame.Key]
		if !ok {
			img := r.frame.Image
			if opts.Scale > 1 {
				scaled, err := imaging.ScaleNearest(img, opts.Scale)
				if err != nil {
					return fmt.Errorf("gif encode: %w", err)
				}
				img = scaled
			}
			pi = palettize(img)
			if r.frame.Key != "" {
				palettized[r.frame.Key] = pi
			}
		}

		anim.Image = append(anim.Image, pi)
		anim.Delay = append(anim.Delay, centiseconds(r.total))
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("gif encode: %w", err)
	}
	return nil
}

// run is a maximal stretch of consecutive frames with the same content key.
type run struct {
	frame Frame
	total time.Duration
}

// coalesce merges consecutive same-key frames, summing durations.
// Frames without a key never merge.
func coalesce(frames []Frame) []run {
	runs := make([]run, 0, len(frames))
	for _, f := range frames {
		if n := len(runs); n > 0 && f.Key != "" && runs[n-1].frame.Key == f.Key {
			runs[n-1].total += f.Duration
			continue
		}
		runs = append(runs, run{frame: f, total: f.Duration})
	}
	return runs
}

// centiseconds converts a duration to GIF delay units, rounding half up.
func centiseconds(d time.Duration) int {
	micros := d.Microseconds()
	return int((micros + 5000) / 10000)
}
