package pikov

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/roach88/pikov/internal/model"
)

// Default preview duration bounds.
const (
	DefaultPreviewMin = 10 * time.Second
	DefaultPreviewMax = 30 * time.Second
)

// Rand supplies the randomness for a preview walk. *math/rand.Rand
// satisfies it; tests substitute a scripted sequence.
type Rand interface {
	Intn(n int) int
}

// PreviewOptions configure a random walk over the transition graph.
type PreviewOptions struct {
	// Start overrides the repository's start frame.
	Start *Frame

	// MinDuration is the earliest the walk may stop, and only back at the
	// start frame. Zero selects the 10s default.
	MinDuration time.Duration

	// MaxDuration is the hard ceiling: no frame is appended that would
	// push the total past it. Zero selects the 30s default.
	MaxDuration time.Duration

	// Rand drives the frame choices. Nil selects a time-seeded source.
	Rand Rand
}

// Preview walks the transition graph and returns the visited frames as a
// clip.
//
// Starting from the start frame, the walk repeatedly appends the current
// frame and accumulates its duration. Once the total reaches MinDuration
// and the walk is back at the start frame, it stops: the clip ends where
// it began and loops seamlessly. Each step follows one outgoing transition
// chosen uniformly at random; a frame with no way out repeats itself. No
// frame is appended that would push the total past MaxDuration, so a walk
// trapped away from the start still terminates.
func (r *Repository) Preview(ctx context.Context, opts PreviewOptions) (*Clip, error) {
	minDur := opts.MinDuration
	if minDur == 0 {
		minDur = DefaultPreviewMin
	}
	maxDur := opts.MaxDuration
	if maxDur == 0 {
		maxDur = DefaultPreviewMax
	}
	if minDur < 0 || maxDur < 0 {
		return nil, model.NewInvalidState("preview durations must not be negative")
	}
	if minDur > maxDur {
		return nil, model.NewInvalidState(fmt.Sprintf(
			"preview min duration %v exceeds max %v", minDur, maxDur))
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	start := opts.Start
	if start == nil {
		designated, err := r.StartFrame(ctx)
		if err != nil {
			return nil, err
		}
		if designated == nil {
			return nil, model.NewMissingStart()
		}
		start = designated
	}

	var frames []*Frame
	var total time.Duration

	current := start
	for {
		if current.Duration() <= 0 {
			return nil, model.NewInvalidState(fmt.Sprintf(
				"frame %d has non-positive duration %v", current.ID(), current.Duration()))
		}

		frames = append(frames, current)
		total += current.Duration()

		if total >= minDur && current.ID() == start.ID() {
			break
		}

		next, err := current.RandomNext(ctx, rng)
		if err != nil {
			return nil, err
		}
		if total+next.Duration() > maxDur {
			break
		}
		current = next
	}

	return &Clip{repo: r, frames: frames}, nil
}
