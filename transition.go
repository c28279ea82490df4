package pikov

import (
	"context"
	"fmt"

	"github.com/roach88/pikov/internal/model"
)

// Transition is a handle to one directed edge between frames.
//
// Delete invalidates the handle: endpoint reads and repeat deletes fail
// with an invalid-state error afterwards.
type Transition struct {
	repo    *Repository
	rec     model.TransitionRecord
	deleted bool

	source *Frame
	target *Frame
}

// ID returns the transition id.
func (t *Transition) ID() int64 {
	return t.rec.ID
}

// SourceID returns the source frame id.
func (t *Transition) SourceID() int64 {
	return t.rec.SourceFrameID
}

// TargetID returns the target frame id.
func (t *Transition) TargetID() int64 {
	return t.rec.TargetFrameID
}

// Source loads the source frame. The frame is cached on the handle.
func (t *Transition) Source(ctx context.Context) (*Frame, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if t.source == nil {
		f, err := t.repo.Frame(ctx, t.rec.SourceFrameID)
		if err != nil {
			return nil, err
		}
		t.source = f
	}
	return t.source, nil
}

// Target loads the target frame. The frame is cached on the handle.
func (t *Transition) Target(ctx context.Context) (*Frame, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if t.target == nil {
		f, err := t.repo.Frame(ctx, t.rec.TargetFrameID)
		if err != nil {
			return nil, err
		}
		t.target = f
	}
	return t.target, nil
}

// Delete removes the edge from the repository and invalidates the handle.
func (t *Transition) Delete(ctx context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := t.repo.store.DeleteTransition(ctx, t.rec.ID); err != nil {
		return err
	}
	t.deleted = true
	return nil
}

func (t *Transition) check() error {
	if t.deleted {
		return model.NewInvalidState(fmt.Sprintf("transition %d is deleted", t.rec.ID))
	}
	return nil
}
