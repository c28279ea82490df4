package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/roach88/pikov/internal/model"
)

// StartFrameID returns the repository's designated start frame.
// The second return value reports whether a start frame is set.
func (s *Store) StartFrameID(ctx context.Context) (int64, bool, error) {
	var id sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT start_frame_id FROM repository WHERE id = 1
	`).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("query start frame: %w", err)
	}
	if !id.Valid {
		return 0, false, nil
	}
	return id.Int64, true, nil
}

// SetStartFrame designates a frame as the repository's start frame,
// replacing any previous designation. The frame must exist.
func (s *Store) SetStartFrame(ctx context.Context, frameID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set start frame: begin tx: %w", err)
	}
	defer tx.Rollback()

	ok, err := frameExistsTx(ctx, tx, frameID)
	if err != nil {
		return fmt.Errorf("set start frame: %w", err)
	}
	if !ok {
		return model.NewReferential("set start frame", "frame", strconv.FormatInt(frameID, 10))
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE repository SET start_frame_id = ? WHERE id = 1
	`, frameID); err != nil {
		return fmt.Errorf("set start frame: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set start frame: commit: %w", err)
	}

	return nil
}

// ClearStartFrame removes the start frame designation. Clearing an already
// unset start frame is a no-op.
func (s *Store) ClearStartFrame(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE repository SET start_frame_id = NULL WHERE id = 1
	`); err != nil {
		return fmt.Errorf("clear start frame: %w", err)
	}
	return nil
}

// Stats reports entity counts and the start frame designation.
func (s *Store) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats

	counts := []struct {
		query string
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM images`, &stats.Images},
		{`SELECT COUNT(*) FROM frames`, &stats.Frames},
		{`SELECT COUNT(*) FROM transitions`, &stats.Transitions},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return model.Stats{}, fmt.Errorf("query stats: %w", err)
		}
	}

	startID, hasStart, err := s.StartFrameID(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	stats.StartFrameID = startID
	stats.HasStart = hasStart

	return stats, nil
}

// GraphSnapshot captures the whole frame graph in one pass: every frame as
// a node with its absorbing flag, and every distinct (source, target) pair
// as an edge weighted by how many parallel transitions connect it.
func (s *Store) GraphSnapshot(ctx context.Context) (model.Graph, error) {
	var graph model.Graph

	absorbing, err := s.AbsorbingFrameIDs(ctx)
	if err != nil {
		return model.Graph{}, err
	}
	absorbingSet := make(map[int64]bool, len(absorbing))
	for _, id := range absorbing {
		absorbingSet[id] = true
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_key FROM frames ORDER BY id ASC
	`)
	if err != nil {
		return model.Graph{}, fmt.Errorf("query graph nodes: %w", err)
	}
	defer rows.Close()

	graph.Nodes = []model.GraphNode{}
	for rows.Next() {
		var node model.GraphNode
		if err := rows.Scan(&node.FrameID, &node.ImageKey); err != nil {
			return model.Graph{}, fmt.Errorf("scan graph node: %w", err)
		}
		node.Absorbing = absorbingSet[node.FrameID]
		graph.Nodes = append(graph.Nodes, node)
	}
	if err := rows.Err(); err != nil {
		return model.Graph{}, fmt.Errorf("iterate graph nodes: %w", err)
	}

	edgeRows, err := s.db.QueryContext(ctx, `
		SELECT source_frame_id, target_frame_id, COUNT(*)
		FROM transitions
		GROUP BY source_frame_id, target_frame_id
		ORDER BY source_frame_id ASC, target_frame_id ASC
	`)
	if err != nil {
		return model.Graph{}, fmt.Errorf("query graph edges: %w", err)
	}
	defer edgeRows.Close()

	graph.Edges = []model.GraphEdge{}
	for edgeRows.Next() {
		var edge model.GraphEdge
		if err := edgeRows.Scan(&edge.SourceFrameID, &edge.TargetFrameID, &edge.Count); err != nil {
			return model.Graph{}, fmt.Errorf("scan graph edge: %w", err)
		}
		graph.Edges = append(graph.Edges, edge)
	}
	if err := edgeRows.Err(); err != nil {
		return model.Graph{}, fmt.Errorf("iterate graph edges: %w", err)
	}

	startID, hasStart, err := s.StartFrameID(ctx)
	if err != nil {
		return model.Graph{}, err
	}
	graph.StartFrameID = startID
	graph.HasStart = hasStart

	return graph, nil
}
