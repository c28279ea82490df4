package pikov

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/pikov/internal/imaging"
	"github.com/roach88/pikov/internal/manifest"
	"github.com/roach88/pikov/internal/model"
	"github.com/roach88/pikov/internal/sprite"
	"github.com/roach88/pikov/props"
)

// ClipImport describes one sprite-sheet clip to import.
type ClipImport struct {
	// ClipID labels the imported frames. Empty means a random UUID.
	ClipID string

	// Sheet is the sprite sheet bitmap. When nil, SheetPath is read and
	// decoded as PNG.
	Sheet image.Image

	// SheetPath locates the sheet on disk. It is also recorded as frame
	// provenance, so it is worth setting even when Sheet is given.
	SheetPath string

	FrameWidth  int
	FrameHeight int

	// FPS sets every imported frame's duration to 1s/FPS.
	FPS int

	// Frames lists cell indices in playback order. Cells are numbered
	// left to right, top to bottom. Indices may repeat.
	Frames []int

	// FlipX mirrors the whole sheet horizontally before slicing.
	FlipX bool

	// Loop adds a transition from the last frame back to the first.
	Loop bool
}

// ImportClip slices a sprite sheet into frames and records them as a
// connected clip: one frame per requested cell, chained by transitions in
// playback order.
//
// Cell bitmaps are stored by content key, so re-importing the same sheet
// adds no new images. Frames, transitions, and the start-frame claim are
// written in a single transaction. Each frame carries clipId, clipIndex,
// and originalImage properties recording where its bitmap came from.
func (r *Repository) ImportClip(ctx context.Context, imp ClipImport) (*Clip, error) {
	if imp.FPS <= 0 {
		return nil, model.NewInvalidState(fmt.Sprintf("clip fps must be positive, got %d", imp.FPS))
	}
	if len(imp.Frames) == 0 {
		return nil, model.NewEmptyInput("clip import")
	}

	img := imp.Sheet
	if img == nil {
		if imp.SheetPath == "" {
			return nil, model.NewInvalidState("clip import needs a sheet image or a sheet path")
		}
		data, err := os.ReadFile(imp.SheetPath)
		if err != nil {
			return nil, fmt.Errorf("read sheet: %w", err)
		}
		img, err = imaging.DecodePNG(data)
		if err != nil {
			return nil, fmt.Errorf("decode sheet %s: %w", imp.SheetPath, err)
		}
	}

	sheet, err := sprite.NewSheet(img, imp.FrameWidth, imp.FrameHeight, imp.FlipX)
	if err != nil {
		return nil, err
	}
	cells, err := sheet.Cells(imp.Frames)
	if err != nil {
		return nil, err
	}

	clipID := imp.ClipID
	if clipID == "" {
		clipID = uuid.NewString()
	}

	// Store each distinct cell bitmap once. The puts run before the frame
	// transaction and are idempotent, so a failed import can be retried.
	keys := make([]string, len(cells))
	stored := make(map[string]bool, len(cells))
	for i, cell := range cells {
		key := imaging.KeyNRGBA(cell.Image)
		if !stored[key] {
			encoded, err := imaging.EncodePNG(cell.Image)
			if err != nil {
				return nil, err
			}
			if _, err := r.store.PutImage(ctx, key, imaging.ContentTypePNG, encoded); err != nil {
				return nil, err
			}
			stored[key] = true
		}
		keys[i] = key
	}

	durationMicros := int64(1_000_000 / imp.FPS)
	specs := make([]model.NewFrame, len(cells))
	for i, cell := range cells {
		origin := props.NewObject(
			props.P("x", props.Int(cell.X)),
			props.P("y", props.Int(cell.Y)),
			props.P("width", props.Int(cell.W)),
			props.P("height", props.Int(cell.H)),
			props.P("flipX", props.Bool(imp.FlipX)),
		)
		if imp.SheetPath != "" {
			origin["path"] = props.String(imp.SheetPath)
		}
		specs[i] = model.NewFrame{
			ImageKey:       keys[i],
			DurationMicros: durationMicros,
			Properties: props.NewObject(
				props.P("clipId", props.String(clipID)),
				props.P("clipIndex", props.Int(i)),
				props.P("originalImage", origin),
			),
		}
	}

	frameRecs, _, err := r.store.InsertClip(ctx, specs, imp.Loop)
	if err != nil {
		return nil, err
	}

	frames := make([]*Frame, len(frameRecs))
	for i, rec := range frameRecs {
		frames[i] = r.wrapFrame(rec)
	}
	return NewClip(frames...), nil
}

// ImportManifest imports every clip declared in a YAML manifest. The
// manifest is parsed and validated in full before anything is written.
// Returned clips follow manifest order.
func (r *Repository) ImportManifest(ctx context.Context, path string) ([]*Clip, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	clips := make([]*Clip, 0, len(m.Clips))
	for _, c := range m.Clips {
		clip, err := r.ImportClip(ctx, ClipImport{
			ClipID:      c.ID,
			SheetPath:   c.Sheet,
			FrameWidth:  c.FrameWidth,
			FrameHeight: c.FrameHeight,
			FPS:         c.FPS,
			Frames:      c.Frames,
			FlipX:       c.FlipX,
			Loop:        c.Loop,
		})
		if err != nil {
			return nil, fmt.Errorf("import clip %s: %w", c.ID, err)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}
