package store

import (
	"context"
	"testing"

	"github.com/roach88/pikov/internal/model"
)

func TestStartFrameID_UnsetOnFreshRepository(t *testing.T) {
	s := createTestStore(t)

	id, hasStart, err := s.StartFrameID(context.Background())
	if err != nil {
		t.Fatalf("StartFrameID() failed: %v", err)
	}
	if hasStart {
		t.Errorf("hasStart = true on fresh repository, id = %d", id)
	}
}

func TestSetStartFrame_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	putTestImage(t, s, "md5-a")

	// First insert auto-claims start; move it explicitly.
	mustInsertFrame(t, s, "md5-a", 0)
	b := mustInsertFrame(t, s, "md5-a", 0)

	if err := s.SetStartFrame(ctx, b.ID); err != nil {
		t.Fatalf("SetStartFrame() failed: %v", err)
	}

	id, hasStart, err := s.StartFrameID(ctx)
	if err != nil {
		t.Fatalf("StartFrameID() failed: %v", err)
	}
	if !hasStart || id != b.ID {
		t.Errorf("start = (%d, %v), want (%d, true)", id, hasStart, b.ID)
	}
}

func TestSetStartFrame_UnknownFrame(t *testing.T) {
	s := createTestStore(t)

	err := s.SetStartFrame(context.Background(), 404)
	if err == nil {
		t.Fatal("expected error for unknown frame, got nil")
	}
	if !model.IsReferential(err) {
		t.Errorf("expected referential error, got %v", err)
	}
}

func TestClearStartFrame(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	putTestImage(t, s, "md5-a")
	mustInsertFrame(t, s, "md5-a", 0)

	if err := s.ClearStartFrame(ctx); err != nil {
		t.Fatalf("ClearStartFrame() failed: %v", err)
	}

	_, hasStart, err := s.StartFrameID(ctx)
	if err != nil {
		t.Fatalf("StartFrameID() failed: %v", err)
	}
	if hasStart {
		t.Error("hasStart = true after clear, want false")
	}

	// Clearing again is a no-op.
	if err := s.ClearStartFrame(ctx); err != nil {
		t.Errorf("second ClearStartFrame() failed: %v", err)
	}
}

func TestClearThenInsertReclaimsStart(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	putTestImage(t, s, "md5-a")

	mustInsertFrame(t, s, "md5-a", 0)
	if err := s.ClearStartFrame(ctx); err != nil {
		t.Fatalf("ClearStartFrame() failed: %v", err)
	}

	// With no start set, the next insert claims it.
	next := mustInsertFrame(t, s, "md5-a", 0)

	id, hasStart, err := s.StartFrameID(ctx)
	if err != nil {
		t.Fatalf("StartFrameID() failed: %v", err)
	}
	if !hasStart || id != next.ID {
		t.Errorf("start = (%d, %v), want (%d, true)", id, hasStart, next.ID)
	}
}

func TestStats_Counts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Images != 0 || stats.Frames != 0 || stats.Transitions != 0 || stats.HasStart {
		t.Errorf("fresh stats = %+v, want all zero", stats)
	}

	putTestImage(t, s, "md5-a")
	putTestImage(t, s, "md5-b")
	a := mustInsertFrame(t, s, "md5-a", 0)
	b := mustInsertFrame(t, s, "md5-b", 0)
	mustInsertFrame(t, s, "md5-a", 0)
	mustInsertTransition(t, s, a.ID, b.ID)

	stats, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Images != 2 {
		t.Errorf("Images = %d, want 2", stats.Images)
	}
	if stats.Frames != 3 {
		t.Errorf("Frames = %d, want 3", stats.Frames)
	}
	if stats.Transitions != 1 {
		t.Errorf("Transitions = %d, want 1", stats.Transitions)
	}
	if !stats.HasStart || stats.StartFrameID != a.ID {
		t.Errorf("start = (%d, %v), want (%d, true)", stats.StartFrameID, stats.HasStart, a.ID)
	}
}

func TestGraphSnapshot_Empty(t *testing.T) {
	s := createTestStore(t)

	graph, err := s.GraphSnapshot(context.Background())
	if err != nil {
		t.Fatalf("GraphSnapshot() failed: %v", err)
	}
	if len(graph.Nodes) != 0 {
		t.Errorf("len(Nodes) = %d, want 0", len(graph.Nodes))
	}
	if len(graph.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(graph.Edges))
	}
	if graph.HasStart {
		t.Error("HasStart = true on empty repository")
	}
}

func TestGraphSnapshot_NodesEdgesAndWeights(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	putTestImage(t, s, "md5-a")
	putTestImage(t, s, "md5-b")

	a := mustInsertFrame(t, s, "md5-a", 0)
	b := mustInsertFrame(t, s, "md5-b", 0)
	c := mustInsertFrame(t, s, "md5-a", 0)

	// Two parallel edges a->b collapse into one weighted edge.
	mustInsertTransition(t, s, a.ID, b.ID)
	mustInsertTransition(t, s, a.ID, b.ID)
	mustInsertTransition(t, s, b.ID, a.ID)

	graph, err := s.GraphSnapshot(ctx)
	if err != nil {
		t.Fatalf("GraphSnapshot() failed: %v", err)
	}

	if len(graph.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(graph.Nodes))
	}
	if graph.Nodes[0].FrameID != a.ID || graph.Nodes[1].FrameID != b.ID || graph.Nodes[2].FrameID != c.ID {
		t.Errorf("node order = [%d %d %d], want [%d %d %d]",
			graph.Nodes[0].FrameID, graph.Nodes[1].FrameID, graph.Nodes[2].FrameID, a.ID, b.ID, c.ID)
	}
	if graph.Nodes[0].ImageKey != "md5-a" || graph.Nodes[1].ImageKey != "md5-b" {
		t.Errorf("node image keys = %q, %q, want md5-a, md5-b",
			graph.Nodes[0].ImageKey, graph.Nodes[1].ImageKey)
	}

	// a and b are in a cycle, c has no edges at all.
	if graph.Nodes[0].Absorbing || graph.Nodes[1].Absorbing {
		t.Error("cycle members flagged absorbing")
	}
	if !graph.Nodes[2].Absorbing {
		t.Error("edgeless frame not flagged absorbing")
	}

	if len(graph.Edges) != 2 {
		t.Fatalf("len(Edges) = %d, want 2 distinct pairs", len(graph.Edges))
	}
	ab := graph.Edges[0]
	if ab.SourceFrameID != a.ID || ab.TargetFrameID != b.ID || ab.Count != 2 {
		t.Errorf("edge[0] = %d->%d x%d, want %d->%d x2", ab.SourceFrameID, ab.TargetFrameID, ab.Count, a.ID, b.ID)
	}
	ba := graph.Edges[1]
	if ba.SourceFrameID != b.ID || ba.TargetFrameID != a.ID || ba.Count != 1 {
		t.Errorf("edge[1] = %d->%d x%d, want %d->%d x1", ba.SourceFrameID, ba.TargetFrameID, ba.Count, b.ID, a.ID)
	}

	if !graph.HasStart || graph.StartFrameID != a.ID {
		t.Errorf("start = (%d, %v), want (%d, true)", graph.StartFrameID, graph.HasStart, a.ID)
	}
}
