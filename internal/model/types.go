package model

import (
	"time"

	"github.com/roach88/pikov/props"
)

// DefaultFrameDurationMicros is the frame duration applied when a caller
// does not supply one (100ms).
const DefaultFrameDurationMicros int64 = 100_000

// ImageRecord is one row of the images table: a content-addressed bitmap.
// Contents is the encoded payload (PNG); Key is derived from the decoded
// pixels, so two encodings of the same pixels share a row.
type ImageRecord struct {
	Key         string
	ContentType string
	Contents    []byte
}

// FrameRecord is one row of the frames table.
type FrameRecord struct {
	ID             int64
	ImageKey       string
	DurationMicros int64
	Properties     props.Object
}

// Duration returns the frame duration as a time.Duration.
func (f FrameRecord) Duration() time.Duration {
	return time.Duration(f.DurationMicros) * time.Microsecond
}

// NewFrame describes a frame to insert. A zero DurationMicros selects
// DefaultFrameDurationMicros; negative values are rejected.
type NewFrame struct {
	ImageKey       string
	DurationMicros int64
	Properties     props.Object
}

// TransitionRecord is one row of the transitions table: a directed edge
// between two frames. Parallel edges and self-loops are legal.
type TransitionRecord struct {
	ID            int64
	SourceFrameID int64
	TargetFrameID int64
}

// Stats summarizes a repository for diagnostics.
type Stats struct {
	Images       int64
	Frames       int64
	Transitions  int64
	StartFrameID int64
	HasStart     bool
}

// GraphNode is one frame in a graph snapshot.
type GraphNode struct {
	FrameID   int64
	ImageKey  string
	Absorbing bool
}

// GraphEdge is a deduplicated directed edge in a graph snapshot.
// Count is the number of parallel transitions it stands for.
type GraphEdge struct {
	SourceFrameID int64
	TargetFrameID int64
	Count         int64
}

// Graph is a read-only snapshot of the frame graph, with nodes ordered by
// frame id and edges ordered by (source, target).
type Graph struct {
	Nodes        []GraphNode
	Edges        []GraphEdge
	StartFrameID int64
	HasStart     bool
}
