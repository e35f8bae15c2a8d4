// Package system defines the graph model of a simulated system: elements,
// their undirected connectivity, the architecture label that produced them,
// and the resulting complex.
//
// A [Graph] is generate-once, render-many: elements are fixed at
// construction and only edges are added afterwards, during generation.
// Nothing in this package is safe for concurrent mutation; consumers must
// treat a fully built graph as an immutable snapshot (see [Complex]).
package system

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound is returned by [Graph.Neighbors] and [Graph.Connect]
	// when an element ID is not a member of the graph. This indicates a
	// broken invariant in the caller, not a recoverable lookup miss.
	ErrElementNotFound = errors.New("element not found")

	// ErrSelfEdge is returned by [Graph.Connect] when both endpoints are
	// the same element. No architecture produces self-loops.
	ErrSelfEdge = errors.New("self edges are not allowed")
)

// Graph holds elements and their undirected adjacency.
//
// The adjacency relation is symmetric: Connect always inserts both
// directions. It is NOT deduplicated: connecting the same pair twice
// yields a parallel edge, visible as a repeated entry in both neighbor
// lists. Callers wanting simple graphs must not repeat Connect calls.
type Graph struct {
	elements  []Element
	adjacency map[ElementID][]ElementID
}

// NewGraph creates a graph over the given elements with no edges.
// Every element receives an (empty) adjacency entry, so Neighbors never
// fails for a member element.
func NewGraph(elements []Element) *Graph {
	g := &Graph{
		elements:  elements,
		adjacency: make(map[ElementID][]ElementID, len(elements)),
	}
	for _, el := range elements {
		g.adjacency[el.ID] = []ElementID{}
	}
	return g
}

// Elements returns the graph's elements in construction order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Elements() []Element { return g.elements }

// Len returns the number of elements.
func (g *Graph) Len() int { return len(g.elements) }

// Contains reports whether id is a member of this graph.
func (g *Graph) Contains(id ElementID) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Neighbors returns the IDs adjacent to id, in insertion order.
// Parallel edges appear as repeated entries. Returns ErrElementNotFound
// if id is not a member of this graph.
func (g *Graph) Neighbors(id ElementID) ([]ElementID, error) {
	n, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, id)
	}
	return n, nil
}

// Connect adds an undirected edge between a and b by appending b to a's
// neighbor list and a to b's. Calling Connect twice for the same pair
// records a parallel edge; no deduplication is performed.
func (g *Graph) Connect(a, b ElementID) error {
	if a == b {
		return fmt.Errorf("%w: %s", ErrSelfEdge, a)
	}
	if _, ok := g.adjacency[a]; !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, a)
	}
	if _, ok := g.adjacency[b]; !ok {
		return fmt.Errorf("%w: %s", ErrElementNotFound, b)
	}
	g.adjacency[a] = append(g.adjacency[a], b)
	g.adjacency[b] = append(g.adjacency[b], a)
	return nil
}

// EdgeCount returns the number of undirected edges, counting parallel
// edges separately. Each edge contributes two adjacency entries.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.adjacency {
		total += len(n)
	}
	return total / 2
}

// Degree returns the number of adjacency entries for id, counting
// parallel edges separately. Returns ErrElementNotFound for non-members.
func (g *Graph) Degree(id ElementID) (int, error) {
	n, err := g.Neighbors(id)
	if err != nil {
		return 0, err
	}
	return len(n), nil
}
