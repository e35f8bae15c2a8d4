package graphio

import (
	"fmt"
	"time"

	"github.com/mwessel/phigrid/pkg/system"
)

// =============================================================================
// Snapshot - Complex Serialization Format
// =============================================================================

// Snapshot is the canonical serialization format for a generated complex.
// Used for CLI output, API responses, and snapshot storage (file, Redis,
// Mongo - hence the bson tags).
//
// The format is human-readable and designed for round-trip fidelity:
// generate → export → re-import produces an identical edge multiset.
// Parallel edges are preserved as repeated entries in Edges.
type Snapshot struct {
	Architecture string    `json:"architecture" bson:"architecture"`
	Phi          float64   `json:"phi" bson:"phi"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`
	Nodes        []Node    `json:"nodes" bson:"nodes"`
	Edges        []Edge    `json:"edges" bson:"edges"`
}

// Node is the serialized form of a system element.
type Node struct {
	ID     string  `json:"id" bson:"id"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Active bool    `json:"active,omitempty" bson:"active,omitempty"`
}

// Edge represents one undirected edge. Each parallel edge appears once
// per occurrence.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// =============================================================================
// Complex ↔ Snapshot Conversion
// =============================================================================

// FromComplex converts a complex to its serialization format.
// Nodes keep generation order; each undirected edge is emitted exactly
// once (per occurrence, for parallel edges), oriented from the earlier
// element to the later one.
func FromComplex(c *system.Complex) Snapshot {
	elements := c.Graph.Elements()
	index := make(map[system.ElementID]int, len(elements))
	for i, el := range elements {
		index[el.ID] = i
	}

	out := Snapshot{
		Architecture: c.Architecture.String(),
		Phi:          c.Phi,
		GeneratedAt:  c.GeneratedAt,
		Nodes:        make([]Node, len(elements)),
	}

	for i, el := range elements {
		out.Nodes[i] = Node{ID: string(el.ID), X: el.Pos.X, Y: el.Pos.Y, Active: el.Active}
	}

	for i, el := range elements {
		neighbors, err := c.Graph.Neighbors(el.ID)
		if err != nil {
			continue // unreachable: Elements and adjacency share membership
		}
		for _, nb := range neighbors {
			if index[nb] > i {
				out.Edges = append(out.Edges, Edge{From: string(el.ID), To: string(nb)})
			}
		}
	}

	return out
}

// ToComplex converts a snapshot back to a complex.
// Returns an error if the architecture label is unknown or an edge
// references a node that is not in the snapshot.
func ToComplex(s Snapshot) (*system.Complex, error) {
	arch, err := system.ParseArchitecture(s.Architecture)
	if err != nil {
		return nil, err
	}

	elements := make([]system.Element, len(s.Nodes))
	for i, n := range s.Nodes {
		elements[i] = system.Element{
			ID:     system.ElementID(n.ID),
			Pos:    system.Position{X: n.X, Y: n.Y},
			Active: n.Active,
		}
	}
	g := system.NewGraph(elements)

	for _, e := range s.Edges {
		if err := g.Connect(system.ElementID(e.From), system.ElementID(e.To)); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}

	return &system.Complex{
		Graph:        g,
		Architecture: arch,
		Phi:          s.Phi,
		GeneratedAt:  s.GeneratedAt,
	}, nil
}
