package pikov

import "github.com/roach88/pikov/internal/model"

// Stats summarizes a repository's contents.
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

// GraphEdge aggregates the transitions between one source/target pair.
// Count is the number of parallel transition rows; a walk leaving the
// source picks this target with probability Count over the source's
// total outgoing rows.
type GraphEdge struct {
	SourceFrameID int64
	TargetFrameID int64
	Count         int64
}

// Graph is a point-in-time snapshot of the frame graph. Nodes are ordered
// by frame id and edges by source then target id.
type Graph struct {
	Nodes        []GraphNode
	Edges        []GraphEdge
	StartFrameID int64
	HasStart     bool
}

func graphFromModel(g model.Graph) Graph {
	out := Graph{
		Nodes:        make([]GraphNode, len(g.Nodes)),
		Edges:        make([]GraphEdge, len(g.Edges)),
		StartFrameID: g.StartFrameID,
		HasStart:     g.HasStart,
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = GraphNode{
			FrameID:   n.FrameID,
			ImageKey:  n.ImageKey,
			Absorbing: n.Absorbing,
		}
	}
	for i, e := range g.Edges {
		out.Edges[i] = GraphEdge{
			SourceFrameID: e.SourceFrameID,
			TargetFrameID: e.TargetFrameID,
			Count:         e.Count,
		}
	}
	return out
}
