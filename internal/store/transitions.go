package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/pikov/internal/model"
)

// InsertTransition creates a directed edge between two frames.
// Both endpoints are verified inside the transaction; a missing endpoint is
// a referential error. Duplicate edges are allowed and weight the random
// walk toward their target.
func (s *Store) InsertTransition(ctx context.Context, sourceID, targetID int64) (model.TransitionRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("insert transition: begin tx: %w", err)
	}
	defer tx.Rollback()

	rec, err := insertTransitionTx(ctx, tx, sourceID, targetID)
	if err != nil {
		return model.TransitionRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("insert transition: commit: %w", err)
	}

	return rec, nil
}

// insertTransitionTx creates one edge inside an open transaction.
func insertTransitionTx(ctx context.Context, tx *sql.Tx, sourceID, targetID int64) (model.TransitionRecord, error) {
	for _, endpoint := range []struct {
		role string
		id   int64
	}{
		{"source frame", sourceID},
		{"target frame", targetID},
	} {
		ok, err := frameExistsTx(ctx, tx, endpoint.id)
		if err != nil {
			return model.TransitionRecord{}, fmt.Errorf("insert transition: %w", err)
		}
		if !ok {
			return model.TransitionRecord{}, model.NewReferential("transition insert", endpoint.role, strconv.FormatInt(endpoint.id, 10))
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO transitions (source_frame_id, target_frame_id)
		VALUES (?, ?)
	`, sourceID, targetID)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("insert transition: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("insert transition: last insert id: %w", err)
	}

	return model.TransitionRecord{ID: id, SourceFrameID: sourceID, TargetFrameID: targetID}, nil
}

// ConnectSequence creates the transitions missing along an ordered run of
// frames: one edge per consecutive pair, plus a closing edge back to the
// first frame when loop is set. Pairs already connected by any edge are
// skipped. The whole operation is one transaction.
//
// Returns only the edges it created.
func (s *Store) ConnectSequence(ctx context.Context, frameIDs []int64, loop bool) ([]model.TransitionRecord, error) {
	if len(frameIDs) == 0 {
		return nil, model.NewEmptyInput("connect sequence")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("connect sequence: begin tx: %w", err)
	}
	defer tx.Rollback()

	pairs := make([][2]int64, 0, len(frameIDs))
	for i := 0; i+1 < len(frameIDs); i++ {
		pairs = append(pairs, [2]int64{frameIDs[i], frameIDs[i+1]})
	}
	if loop {
		pairs = append(pairs, [2]int64{frameIDs[len(frameIDs)-1], frameIDs[0]})
	}

	created := []model.TransitionRecord{}
	for _, pair := range pairs {
		var count int
		err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM transitions
			WHERE source_frame_id = ? AND target_frame_id = ?
		`, pair[0], pair[1]).Scan(&count)
		if err != nil {
			return nil, fmt.Errorf("connect sequence: check pair: %w", err)
		}
		if count > 0 {
			continue
		}

		rec, err := insertTransitionTx(ctx, tx, pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("connect sequence: commit: %w", err)
	}

	return created, nil
}

// GetTransition retrieves a single transition by id.
func (s *Store) GetTransition(ctx context.Context, id int64) (model.TransitionRecord, error) {
	var rec model.TransitionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_frame_id, target_frame_id
		FROM transitions
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.SourceFrameID, &rec.TargetFrameID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransitionRecord{}, model.NewNotFound("transition", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("get transition: %w", err)
	}
	return rec, nil
}

// ListTransitions returns every transition ordered by id.
func (s *Store) ListTransitions(ctx context.Context) ([]model.TransitionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_frame_id, target_frame_id
		FROM transitions
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	return collectTransitions(rows)
}

// OutgoingTransitions returns a frame's outgoing edges ordered by target
// frame id, then edge id. The ordering is part of the walk's determinism:
// a scripted random source always sees candidates in the same positions.
func (s *Store) OutgoingTransitions(ctx context.Context, frameID int64) ([]model.TransitionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_frame_id, target_frame_id
		FROM transitions
		WHERE source_frame_id = ?
		ORDER BY target_frame_id ASC, id ASC
	`, frameID)
	if err != nil {
		return nil, fmt.Errorf("query outgoing transitions: %w", err)
	}
	defer rows.Close()

	return collectTransitions(rows)
}

// DeleteTransition removes an edge by id.
// Deleting an id that does not exist is a not-found error.
func (s *Store) DeleteTransition(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transitions WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("delete transition: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transition: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFound("transition", strconv.FormatInt(id, 10))
	}

	return nil
}

// collectTransitions drains rows into records with the usual empty-slice
// convention.
func collectTransitions(rows *sql.Rows) ([]model.TransitionRecord, error) {
	var transitions []model.TransitionRecord
	for rows.Next() {
		var rec model.TransitionRecord
		if err := rows.Scan(&rec.ID, &rec.SourceFrameID, &rec.TargetFrameID); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		transitions = append(transitions, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transitions: %w", err)
	}

	if transitions == nil {
		transitions = []model.TransitionRecord{}
	}

	return transitions, nil
}
