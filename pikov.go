package pikov

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/model"
	"github.com/roach88/pikov/internal/store"
)

// Repository is a pixel animation store backed by a single local file.
//
// It holds content-addressed bitmaps, frames that bind a bitmap to a
// duration, and probabilistic transitions between frames. One frame may be
// designated the start frame; previews walk the transition graph from
// there.
//
// A Repository is safe for use from multiple goroutines: all state lives in
// the underlying database, which is opened with a single connection.
type Repository struct {
	path  string
	store *store.Store
}

// Create initializes a new repository file at path.
// It fails if the path already exists.
func Create(path string) (*Repository, error) {
	s, err := store.Create(path)
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, store: s}, nil
}

// Open opens an existing repository file.
// It fails if the path does not exist.
func Open(path string) (*Repository, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, store: s}, nil
}

// Close releases the underlying database.
func (r *Repository) Close() error {
	return r.store.Close()
}

// Path returns the repository file path.
func (r *Repository) Path() string {
	return r.path
}

// AddImage stores a bitmap and returns its content key.
//
// The image is normalized to non-premultiplied RGBA before hashing, so the
// key depends only on pixel content: adding the same picture twice returns
// the same key with inserted false, and the stored bytes are not rewritten.
func (r *Repository) AddImage(ctx context.Context, img image.Image) (key string, inserted bool, err error) {
	normalized := imaging.Normalize(img)
	key = imaging.KeyNRGBA(normalized)

	encoded, err := imaging.EncodePNG(normalized)
	if err != nil {
		return "", false, err
	}

	inserted, err = r.store.PutImage(ctx, key, imaging.ContentTypePNG, encoded)
	if err != nil {
		return "", false, err
	}
	return key, inserted, nil
}

// GetImage retrieves a stored bitmap by content key.
func (r *Repository) GetImage(ctx context.Context, key string) (*Image, error) {
	rec, err := r.store.GetImage(ctx, key)
	if err != nil {
		return nil, err
	}
	return &Image{key: rec.Key, contentType: rec.ContentType, contents: rec.Contents}, nil
}

// HasImage reports whether a bitmap is stored under the given key.
func (r *Repository) HasImage(ctx context.Context, key string) (bool, error) {
	return r.store.HasImage(ctx, key)
}

// AddFrame creates a frame showing the image stored under imageKey for the
// given duration. A zero duration selects the default of 100ms. The first
// frame added to a repository becomes the start frame.
func (r *Repository) AddFrame(ctx context.Context, imageKey string, duration time.Duration) (*Frame, error) {
	rec, err := r.store.InsertFrame(ctx, model.NewFrame{
		ImageKey:       imageKey,
		DurationMicros: duration.Microseconds(),
	})
	if err != nil {
		return nil, err
	}
	return r.wrapFrame(rec), nil
}

// Frame retrieves a frame by id.
func (r *Repository) Frame(ctx context.Context, id int64) (*Frame, error) {
	rec, err := r.store.GetFrame(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.wrapFrame(rec), nil
}

// Frames returns every frame ordered by id.
func (r *Repository) Frames(ctx context.Context) ([]*Frame, error) {
	recs, err := r.store.ListFrames(ctx)
	if err != nil {
		return nil, err
	}
	frames := make([]*Frame, len(recs))
	for i, rec := range recs {
		frames[i] = r.wrapFrame(rec)
	}
	return frames, nil
}

// AbsorbingFrames returns the frames a preview can never leave: frames with
// no outgoing transitions, or whose only transitions point at themselves.
// Ordered by frame id.
func (r *Repository) AbsorbingFrames(ctx context.Context) ([]*Frame, error) {
	ids, err := r.store.AbsorbingFrameIDs(ctx)
	if err != nil {
		return nil, err
	}

	frames := make([]*Frame, 0, len(ids))
	for _, id := range ids {
		rec, err := r.store.GetFrame(ctx, id)
		if err != nil {
			return nil, err
		}
		frames = append(frames, r.wrapFrame(rec))
	}
	return frames, nil
}

// AddTransition creates a directed edge between two frames. Parallel edges
// are allowed; each one weights the random walk toward its target.
func (r *Repository) AddTransition(ctx context.Context, sourceID, targetID int64) (*Transition, error) {
	rec, err := r.store.InsertTransition(ctx, sourceID, targetID)
	if err != nil {
		return nil, err
	}
	return r.wrapTransition(rec), nil
}

// Transition retrieves a transition by id.
func (r *Repository) Transition(ctx context.Context, id int64) (*Transition, error) {
	rec, err := r.store.GetTransition(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.wrapTransition(rec), nil
}

// Transitions returns every transition ordered by id.
func (r *Repository) Transitions(ctx context.Context) ([]*Transition, error) {
	recs, err := r.store.ListTransitions(ctx)
	if err != nil {
		return nil, err
	}
	transitions := make([]*Transition, len(recs))
	for i, rec := range recs {
		transitions[i] = r.wrapTransition(rec)
	}
	return transitions, nil
}

// StartFrame returns the repository's start frame, or nil when none is set.
func (r *Repository) StartFrame(ctx context.Context) (*Frame, error) {
	id, ok, err := r.store.StartFrameID(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	rec, err := r.store.GetFrame(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.wrapFrame(rec), nil
}

// SetStartFrame designates f as the start frame. Passing nil clears the
// designation; the next frame added will claim it.
func (r *Repository) SetStartFrame(ctx context.Context, f *Frame) error {
	if f == nil {
		return r.store.ClearStartFrame(ctx)
	}
	return r.store.SetStartFrame(ctx, f.ID())
}

// Stats reports entity counts and the start frame designation.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	s, err := r.store.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Images:       s.Images,
		Frames:       s.Frames,
		Transitions:  s.Transitions,
		StartFrameID: s.StartFrameID,
		HasStart:     s.HasStart,
	}, nil
}

// Graph captures the whole frame graph: every frame as a node with its
// absorbing flag, and every distinct (source, target) pair as one edge
// weighted by its transition count.
func (r *Repository) Graph(ctx context.Context) (Graph, error) {
	g, err := r.store.GraphSnapshot(ctx)
	if err != nil {
		return Graph{}, err
	}
	return graphFromModel(g), nil
}

// SaveGIFOptions bundle a preview walk with GIF encoding for the one-call
// export path.
type SaveGIFOptions struct {
	Walk PreviewOptions
	GIF  GIFOptions
}

// SaveGIF walks the transition graph and writes the visited frames as an
// animated GIF. The walk starts at Walk.Start or the stored start frame and
// fails with a missing-start error when neither is set. The export is fully
// encoded in memory before anything reaches w.
func (r *Repository) SaveGIF(ctx context.Context, w io.Writer, opts SaveGIFOptions) error {
	clip, err := r.Preview(ctx, opts.Walk)
	if err != nil {
		return err
	}
	return clip.SaveGIF(ctx, w, opts.GIF)
}

func (r *Repository) wrapFrame(rec model.FrameRecord) *Frame {
	return &Frame{repo: r, rec: rec}
}

func (r *Repository) wrapTransition(rec model.TransitionRecord) *Transition {
	return &Transition{repo: r, rec: rec}
}
