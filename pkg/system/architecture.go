package system

import (
	"errors"
	"fmt"
)

// ErrUnknownArchitecture is returned by [ParseArchitecture] when the label
// does not name one of the three supported architectures.
var ErrUnknownArchitecture = errors.New("unknown architecture")

// Architecture selects which topology-generation rule a complex is built
// with, and which Φ value a metric scale associates with it. The set is
// closed: exactly three architectures exist.
type Architecture string

const (
	// ArchIntegrated is a small-world-like topology: a grid lattice plus
	// long-range edges that make the graph irreducible to independent parts.
	ArchIntegrated Architecture = "integrated"

	// ArchModular is two fully-connected cliques joined by a single bridge,
	// a system decomposable into near-independent subsystems.
	ArchModular Architecture = "modular"

	// ArchRandom wires every element to one uniformly random partner,
	// a structureless baseline for contrast.
	ArchRandom Architecture = "random"
)

// Architectures returns all supported architectures in display order.
func Architectures() []Architecture {
	return []Architecture{ArchIntegrated, ArchModular, ArchRandom}
}

// ParseArchitecture converts a label to an Architecture.
// Returns ErrUnknownArchitecture for anything outside the closed set.
func ParseArchitecture(s string) (Architecture, error) {
	switch Architecture(s) {
	case ArchIntegrated, ArchModular, ArchRandom:
		return Architecture(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownArchitecture, s)
	}
}

// String returns the architecture label.
func (a Architecture) String() string { return string(a) }

// Valid reports whether a is one of the three supported architectures.
func (a Architecture) Valid() bool {
	switch a {
	case ArchIntegrated, ArchModular, ArchRandom:
		return true
	}
	return false
}
