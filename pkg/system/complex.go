package system

import "time"

// Complex is the aggregate a generator produces: the elements and their
// connectivity, the architecture that wired them, and the Φ value the
// metric scale associates with that architecture.
//
// A Complex is an immutable snapshot. Architecture changes produce a
// fresh Complex; the previous one is discarded whole, never mutated.
// Publishing a fully built Complex through a single assignment (or
// through watch.Holder) is therefore safe across goroutines.
type Complex struct {
	Graph        *Graph
	Architecture Architecture
	Phi          float64

	// GeneratedAt records when the complex was built. Snapshot stores
	// use it for listing; generation logic ignores it.
	GeneratedAt time.Time
}

// NewComplex assembles a complex from a populated graph.
func NewComplex(g *Graph, arch Architecture, phi float64) *Complex {
	return &Complex{
		Graph:        g,
		Architecture: arch,
		Phi:          phi,
		GeneratedAt:  time.Now().UTC(),
	}
}
