package pikov

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/roach88/pikov/internal/gifenc"
	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/model"
)

// Clip is an ordered sequence of frames from one repository: an import's
// playback order, a preview walk, or any sequence assembled by hand.
// A clip is a view, not a stored entity; the frames it references live in
// the repository.
type Clip struct {
	repo   *Repository
	frames []*Frame
}

// NewClip assembles a clip from frames. All frames must come from the same
// repository.
func NewClip(frames ...*Frame) *Clip {
	c := &Clip{frames: frames}
	if len(frames) > 0 {
		c.repo = frames[0].repo
	}
	return c
}

// Frames returns the clip's frames in playback order.
func (c *Clip) Frames() []*Frame {
	return c.frames
}

// Len returns the number of frames.
func (c *Clip) Len() int {
	return len(c.frames)
}

// Duration returns the summed duration of all frames.
func (c *Clip) Duration() time.Duration {
	var total time.Duration
	for _, f := range c.frames {
		total += f.Duration()
	}
	return total
}

// Concat returns a new clip playing c then other.
func (c *Clip) Concat(other *Clip) *Clip {
	frames := make([]*Frame, 0, len(c.frames)+len(other.frames))
	frames = append(frames, c.frames...)
	frames = append(frames, other.frames...)
	return NewClip(frames...)
}

// AddMissingTransitions creates the edges needed to play the clip in order:
// one per consecutive pair, plus a closing edge back to the first frame
// when loop is set. Pairs already connected are left alone.
// Returns only the edges it created.
func (c *Clip) AddMissingTransitions(ctx context.Context, loop bool) ([]*Transition, error) {
	if len(c.frames) == 0 {
		return nil, model.NewEmptyInput("add missing transitions")
	}

	ids := make([]int64, len(c.frames))
	for i, f := range c.frames {
		ids[i] = f.ID()
	}

	recs, err := c.repo.store.ConnectSequence(ctx, ids, loop)
	if err != nil {
		return nil, err
	}

	transitions := make([]*Transition, len(recs))
	for i, rec := range recs {
		transitions[i] = c.repo.wrapTransition(rec)
	}
	return transitions, nil
}

// TransitionTo creates an edge from this clip's last frame to other's first
// frame, splicing the two clips in the graph.
func (c *Clip) TransitionTo(ctx context.Context, other *Clip) (*Transition, error) {
	if len(c.frames) == 0 || other.Len() == 0 {
		return nil, model.NewEmptyInput("clip splice")
	}
	last := c.frames[len(c.frames)-1]
	return last.TransitionTo(ctx, other.Frames()[0])
}

// GIFOptions control animated GIF export.
type GIFOptions struct {
	// Scale multiplies pixel dimensions by a whole factor using
	// nearest-neighbor sampling. Zero and one leave the size unchanged.
	Scale int

	// LoopCount follows image/gif semantics: 0 loops forever.
	LoopCount int
}

// SaveGIF exports the clip as an animated GIF.
//
// Consecutive frames showing the same image collapse into one GIF frame
// with their durations summed. The output is fully encoded in memory
// before anything is written, so a failed export leaves w untouched.
func (c *Clip) SaveGIF(ctx context.Context, w io.Writer, opts GIFOptions) error {
	if len(c.frames) == 0 {
		return model.NewEmptyInput("gif export")
	}

	decoded := make(map[string]*gifenc.Frame, len(c.frames))
	frames := make([]gifenc.Frame, 0, len(c.frames))

	for _, f := range c.frames {
		cached, ok := decoded[f.ImageKey()]
		if !ok {
			img, err := f.Image(ctx)
			if err != nil {
				return err
			}
			bitmap, err := img.Decode()
			if err != nil {
				return err
			}
			cached = &gifenc.Frame{
				Key:   f.ImageKey(),
				Image: imaging.Normalize(bitmap),
			}
			decoded[f.ImageKey()] = cached
		}

		frames = append(frames, gifenc.Frame{
			Key:      cached.Key,
			Image:    cached.Image,
			Duration: f.Duration(),
		})
	}

	var buf bytes.Buffer
	if err := gifenc.Encode(&buf, frames, gifenc.Options{
		Scale:     opts.Scale,
		LoopCount: opts.LoopCount,
	}); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
