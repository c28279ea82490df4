package pikov

import (
	"context"
	"time"

	"github.com/roach88/pikov/internal/model"
	"github.com/roach88/pikov/props"
)

// Frame is a handle to one playback step: an image shown for a duration,
// with an open-ended property bag. Identity, image key, and duration are
// fixed at creation; properties are read fresh from the repository.
type Frame struct {
	repo *Repository
	rec  model.FrameRecord
}

// ID returns the frame id.
func (f *Frame) ID() int64 {
	return f.rec.ID
}

// ImageKey returns the content key of the frame's image.
func (f *Frame) ImageKey() string {
	return f.rec.ImageKey
}

// Duration returns how long the frame stays on screen.
func (f *Frame) Duration() time.Duration {
	return f.rec.Duration()
}

// Image loads the frame's bitmap.
func (f *Frame) Image(ctx context.Context) (*Image, error) {
	return f.repo.GetImage(ctx, f.rec.ImageKey)
}

// Transitions returns the frame's outgoing edges, ordered by target frame
// id and then edge id.
func (f *Frame) Transitions(ctx context.Context) ([]*Transition, error) {
	recs, err := f.repo.store.OutgoingTransitions(ctx, f.rec.ID)
	if err != nil {
		return nil, err
	}
	transitions := make([]*Transition, len(recs))
	for i, rec := range recs {
		transitions[i] = f.repo.wrapTransition(rec)
	}
	return transitions, nil
}

// TransitionTo creates an edge from this frame to target.
func (f *Frame) TransitionTo(ctx context.Context, target *Frame) (*Transition, error) {
	return f.repo.AddTransition(ctx, f.rec.ID, target.ID())
}

// Property reads one property. Absent keys return props.Null, mirroring how
// SetProperty treats null as removal.
func (f *Frame) Property(ctx context.Context, key string) (props.Value, error) {
	bag, err := f.Properties(ctx)
	if err != nil {
		return nil, err
	}
	value, ok := bag[key]
	if !ok {
		return props.Null{}, nil
	}
	return value, nil
}

// SetProperty writes one property. Setting props.Null (or nil) removes the
// key; removing an absent key is a no-op.
func (f *Frame) SetProperty(ctx context.Context, key string, value props.Value) error {
	return f.repo.store.SetFrameProperty(ctx, f.rec.ID, key, value)
}

// Properties reads the whole property bag.
func (f *Frame) Properties(ctx context.Context) (props.Object, error) {
	rec, err := f.repo.store.GetFrame(ctx, f.rec.ID)
	if err != nil {
		return nil, err
	}
	return rec.Properties, nil
}

// RandomNext picks the frame's successor for a random walk: one outgoing
// transition chosen uniformly, so parallel edges weight their target.
// An absorbing frame returns itself.
func (f *Frame) RandomNext(ctx context.Context, rng Rand) (*Frame, error) {
	recs, err := f.repo.store.OutgoingTransitions(ctx, f.rec.ID)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return f, nil
	}

	pick := recs[rng.Intn(len(recs))]
	if pick.TargetFrameID == f.rec.ID {
		return f, nil
	}
	return f.repo.Frame(ctx, pick.TargetFrameID)
}
