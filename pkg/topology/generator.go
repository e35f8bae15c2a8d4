// Package topology builds system graphs under the three supported
// architectures.
//
// Generation is stateless and all-or-nothing: every call allocates a fresh
// [system.Complex], wires its connectivity according to the architecture's
// rule, and scores it with the configured metric evaluator. Previously
// returned complexes are never touched.
//
// Elements are laid out on an implicit grid of ceil(n/W) rows by W columns
// (W defaults to [DefaultGridWidth]); positions are carried on the elements
// for presentation layers.
package topology

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/mwessel/phigrid/pkg/system"
)

// ErrInvalidCount is returned by [Generate] when the element count is not
// positive. Generation has no degenerate mode; n must be at least 1.
var ErrInvalidCount = errors.New("element count must be at least 1")

// cliqueSize is the reference size of each modular clique.
const cliqueSize = 4

// Generate builds a complex of n elements wired according to arch.
//
// The integrated and modular rules are deterministic: two calls with the
// same arguments produce identical edge sets. The random rule draws from
// a non-seeded source unless [WithRand] or [WithSeed] is given.
func Generate(arch system.Architecture, n int, opts ...Option) (*system.Complex, error) {
	if !arch.Valid() {
		return nil, fmt.Errorf("%w: %q", system.ErrUnknownArchitecture, arch)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g := newGrid(n, o.gridWidth)
	ids := make([]system.ElementID, n)
	for i, el := range g.Elements() {
		ids[i] = el.ID
	}

	var err error
	switch arch {
	case system.ArchIntegrated:
		err = wireIntegrated(g, ids, o.gridWidth)
	case system.ArchModular:
		err = wireModular(g, ids)
	case system.ArchRandom:
		rng := o.rng
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		err = wireRandom(g, ids, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("wire %s: %w", arch, err)
	}

	c := system.NewComplex(g, arch, 0)
	phi, err := o.evaluator.Evaluate(c)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", arch, err)
	}
	c.Phi = phi
	return c, nil
}

// newGrid allocates n elements positioned on a width-column grid,
// row-major from the top-left cell.
func newGrid(n, width int) *system.Graph {
	elements := make([]system.Element, n)
	for i := range elements {
		elements[i] = system.NewElement(system.Position{
			X: float64(i % width),
			Y: float64(i / width),
		})
	}
	return system.NewGraph(elements)
}

// wireIntegrated builds the lattice backbone plus two long-range edges.
//
// Each element connects to its right neighbor within the row and to the
// element directly below. The lattice alone decomposes cheaply; the two
// corner-to-corner edges are what make the graph irreducible, which is
// the structural property the Φ scale rewards.
func wireIntegrated(g *system.Graph, ids []system.ElementID, width int) error {
	n := len(ids)
	for i := 0; i < n; i++ {
		if (i+1)%width != 0 && i+1 < n {
			if err := g.Connect(ids[i], ids[i+1]); err != nil {
				return err
			}
		}
		if i+width < n {
			if err := g.Connect(ids[i], ids[i+width]); err != nil {
				return err
			}
		}
	}

	// Long-range edges: first ↔ last element, end of first row ↔ start
	// of last row. Each is skipped when its endpoints coincide or the
	// edge already exists in the lattice (tiny grids), so the lattice
	// plus long-range edges never contains parallels.
	last := n - 1
	if last > 1 && last != width {
		if err := g.Connect(ids[0], ids[last]); err != nil {
			return err
		}
	}
	a := min(width-1, last)     // end of first row
	b := (last / width) * width // start of last row
	if a != b && !(min(a, b) == 0 && max(a, b) == last) {
		if err := g.Connect(ids[a], ids[b]); err != nil {
			return err
		}
	}
	return nil
}

// wireModular builds two cliques on the first and last cliqueSize
// elements, fully connected internally, joined by exactly one bridge.
// Elements between the cliques stay isolated.
func wireModular(g *system.Graph, ids []system.ElementID) error {
	n := len(ids)
	k := cliqueSize
	if n < 2*k {
		k = n / 2
	}
	if k < 1 {
		return nil // single element, nothing to wire
	}

	if err := wireClique(g, ids[:k]); err != nil {
		return err
	}
	if err := wireClique(g, ids[n-k:]); err != nil {
		return err
	}

	// The minimal-information link between the two subsystems.
	return g.Connect(ids[k-1], ids[n-k])
}

// wireClique adds all pairwise edges among members.
func wireClique(g *system.Graph, members []system.ElementID) error {
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if err := g.Connect(members[i], members[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// wireRandom connects every element to one uniformly random partner,
// excluding itself. Partners may repeat across iterations, so parallel
// edges are possible; the graph keeps them (see [system.Graph.Connect]).
func wireRandom(g *system.Graph, ids []system.ElementID, rng *rand.Rand) error {
	n := len(ids)
	if n < 2 {
		return nil
	}
	for i := 0; i < n; i++ {
		j := rng.IntN(n - 1)
		if j >= i {
			j++
		}
		if err := g.Connect(ids[i], ids[j]); err != nil {
			return err
		}
	}
	return nil
}
