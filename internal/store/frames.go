package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/pikov/internal/model"
	"github.com/roach88/pikov/props"
)

// InsertFrame inserts one frame and, in the same transaction, claims the
// repository start frame if none is set. A zero duration selects the
// default (100ms); negative durations are rejected.
//
// Fails with a referential error when the image key is unknown.
func (s *Store) InsertFrame(ctx context.Context, f model.NewFrame) (model.FrameRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	rec, err := insertFrameTx(ctx, tx, f)
	if err != nil {
		return model.FrameRecord{}, err
	}

	if err := claimStartFrameTx(ctx, tx, rec.ID); err != nil {
		return model.FrameRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: commit: %w", err)
	}

	return rec, nil
}

// InsertClip atomically inserts an ordered run of frames, chains a
// transition between each consecutive pair, and optionally closes the loop
// with a final edge back to the first frame. The first frame claims the
// repository start frame if none is set.
//
// Everything happens in one transaction: a failed import writes nothing.
func (s *Store) InsertClip(ctx context.Context, specs []model.NewFrame, loop bool) ([]model.FrameRecord, []model.TransitionRecord, error) {
	if len(specs) == 0 {
		return nil, nil, model.NewEmptyInput("clip import")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("insert clip: begin tx: %w", err)
	}
	defer tx.Rollback()

	frames := make([]model.FrameRecord, 0, len(specs))
	for _, spec := range specs {
		rec, err := insertFrameTx(ctx, tx, spec)
		if err != nil {
			return nil, nil, err
		}
		frames = append(frames, rec)
	}

	if err := claimStartFrameTx(ctx, tx, frames[0].ID); err != nil {
		return nil, nil, err
	}

	transitions := []model.TransitionRecord{}
	for i := 0; i+1 < len(frames); i++ {
		rec, err := insertTransitionTx(ctx, tx, frames[i].ID, frames[i+1].ID)
		if err != nil {
			return nil, nil, err
		}
		transitions = append(transitions, rec)
	}
	if loop {
		rec, err := insertTransitionTx(ctx, tx, frames[len(frames)-1].ID, frames[0].ID)
		if err != nil {
			return nil, nil, err
		}
		transitions = append(transitions, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("insert clip: commit: %w", err)
	}

	return frames, transitions, nil
}

// insertFrameTx inserts one frame row inside an open transaction.
func insertFrameTx(ctx context.Context, tx *sql.Tx, f model.NewFrame) (model.FrameRecord, error) {
	duration := f.DurationMicros
	if duration == 0 {
		duration = model.DefaultFrameDurationMicros
	}
	if duration < 0 {
		return model.FrameRecord{}, fmt.Errorf("insert frame: duration must be positive, got %dus", duration)
	}

	ok, err := imageExistsTx(ctx, tx, f.ImageKey)
	if err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: %w", err)
	}
	if !ok {
		return model.FrameRecord{}, model.NewReferential("frame insert", "image", f.ImageKey)
	}

	propsJSON, err := marshalProperties(f.Properties)
	if err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO frames (image_key, duration_micros, properties_json)
		VALUES (?, ?, ?)
	`, f.ImageKey, duration, propsJSON)
	if err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.FrameRecord{}, fmt.Errorf("insert frame: last insert id: %w", err)
	}

	bag := f.Properties
	if bag == nil {
		bag = props.Object{}
	}
	return model.FrameRecord{
		ID:             id,
		ImageKey:       f.ImageKey,
		DurationMicros: duration,
		Properties:     bag,
	}, nil
}

// claimStartFrameTx sets the repository start frame to frameID only when no
// start frame is set. The IS NULL guard makes the claim a no-op otherwise.
func claimStartFrameTx(ctx context.Context, tx *sql.Tx, frameID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE repository
		SET start_frame_id = ?
		WHERE id = 1 AND start_frame_id IS NULL
	`, frameID)
	if err != nil {
		return fmt.Errorf("claim start frame: %w", err)
	}
	return nil
}

// GetFrame retrieves a single frame by id.
func (s *Store) GetFrame(ctx context.Context, id int64) (model.FrameRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, image_key, duration_micros, properties_json
		FROM frames
		WHERE id = ?
	`, id)

	rec, err := scanFrameRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FrameRecord{}, model.NewNotFound("frame", strconv.FormatInt(id, 10))
	}
	return rec, err
}

// ListFrames returns every frame ordered by id.
// Returns an empty slice (not nil) when the repository has no frames.
func (s *Store) ListFrames(ctx context.Context) ([]model.FrameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_key, duration_micros, properties_json
		FROM frames
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var frames []model.FrameRecord
	for rows.Next() {
		rec, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		frames = append(frames, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frames: %w", err)
	}

	if frames == nil {
		frames = []model.FrameRecord{}
	}

	return frames, nil
}

// SetFrameProperty merges one key into a frame's property bag inside a
// single read-modify-write transaction. Setting props.Null removes the key;
// removing an absent key is a no-op.
func (s *Store) SetFrameProperty(ctx context.Context, id int64, key string, value props.Value) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set property: begin tx: %w", err)
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, `
		SELECT properties_json FROM frames WHERE id = ?
	`, id).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewNotFound("frame", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return fmt.Errorf("set property: read bag: %w", err)
	}

	bag, err := unmarshalProperties(stored)
	if err != nil {
		return fmt.Errorf("set property: %w", err)
	}

	if _, isNull := value.(props.Null); isNull || value == nil {
		delete(bag, key)
	} else {
		bag[key] = value
	}

	merged, err := marshalProperties(bag)
	if err != nil {
		return fmt.Errorf("set property: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE frames SET properties_json = ? WHERE id = ?
	`, merged, id); err != nil {
		return fmt.Errorf("set property: write bag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set property: commit: %w", err)
	}

	return nil
}

// AbsorbingFrameIDs returns the ids of frames the preview walk can never
// leave: frames with no outgoing transitions at all, or whose only outgoing
// transitions point back at themselves. Ordered by frame id.
func (s *Store) AbsorbingFrameIDs(ctx context.Context) ([]int64, error) {
	// Self-loops are excluded from the join, so a frame whose every edge is
	// a self-loop matches the IS NULL filter just like an edgeless frame.
	rows, err := s.db.QueryContext(ctx, `
		SELECT frames.id
		FROM frames
		LEFT OUTER JOIN transitions
		  ON frames.id = transitions.source_frame_id
		 AND frames.id != transitions.target_frame_id
		WHERE transitions.source_frame_id IS NULL
		ORDER BY frames.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query absorbing frames: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan absorbing frame: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate absorbing frames: %w", err)
	}

	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// frameExistsTx checks for a frame inside an open transaction.
func frameExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM frames WHERE id = ?
	`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check frame in tx: %w", err)
	}
	return count > 0, nil
}

// scanFrame scans a row into a FrameRecord.
func scanFrame(rows *sql.Rows) (model.FrameRecord, error) {
	var rec model.FrameRecord
	var propsJSON string

	if err := rows.Scan(&rec.ID, &rec.ImageKey, &rec.DurationMicros, &propsJSON); err != nil {
		return model.FrameRecord{}, fmt.Errorf("scan frame: %w", err)
	}

	bag, err := unmarshalProperties(propsJSON)
	if err != nil {
		return model.FrameRecord{}, err
	}
	rec.Properties = bag

	return rec, nil
}

// scanFrameRow scans a single row into a FrameRecord.
func scanFrameRow(row *sql.Row) (model.FrameRecord, error) {
	var rec model.FrameRecord
	var propsJSON string

	if err := row.Scan(&rec.ID, &rec.ImageKey, &rec.DurationMicros, &propsJSON); err != nil {
		return model.FrameRecord{}, err
	}

	bag, err := unmarshalProperties(propsJSON)
	if err != nil {
		return model.FrameRecord{}, err
	}
	rec.Properties = bag

	return rec, nil
}
