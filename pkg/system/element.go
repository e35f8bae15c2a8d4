package system

import "github.com/google/uuid"

// ElementID uniquely identifies an element within a graph.
// IDs are opaque and stable for the lifetime of the graph that owns them.
type ElementID string

// Position is a 2-D grid position used by presentation layers for layout.
// X is the column and Y the row of the implicit generation grid; consumers
// scale these to screen or canvas coordinates as needed.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is a node in the simulated system, the analog of a neuron or
// logic gate. Identity is assigned at creation and never changes.
//
// Active is a presentation-only flag (e.g., highlighting during an
// animation). Generators never set it; it defaults to false.
type Element struct {
	ID     ElementID `json:"id"`
	Pos    Position  `json:"pos"`
	Active bool      `json:"active,omitempty"`
}

// NewElement creates an element at the given position with a fresh
// random identity.
func NewElement(pos Position) Element {
	return Element{ID: ElementID(uuid.NewString()), Pos: pos}
}
