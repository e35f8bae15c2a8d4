// Package metric associates a Φ value with a generated system.
//
// Φ conceptually measures a system's capacity for integrated information.
// The current evaluator is a per-architecture constant lookup, a stand-in
// for a structural computation (partition search over system states). The
// [Evaluator] interface isolates that choice: swapping in a real
// graph-walking computation requires no changes to generators or callers.
package metric

import (
	"errors"
	"fmt"

	"github.com/mwessel/phigrid/pkg/system"
)

// ErrUnscored is returned by [Scale.Evaluate] when the scale has no entry
// for the complex's architecture. A complete scale covers all three.
var ErrUnscored = errors.New("no metric value for architecture")

// Evaluator computes the Φ value for a generated complex.
//
// Implementations may inspect the graph (a future structural metric) or
// ignore it entirely (the label-driven [Scale]).
type Evaluator interface {
	Evaluate(c *system.Complex) (float64, error)
}

// Scale is a label-driven Evaluator: a fixed mapping from architecture
// to Φ, independent of the actually generated edges. A modular graph with
// an unusually strong bridge still reports the modular constant.
type Scale map[system.Architecture]float64

// DefaultScale returns the reference Φ values.
// Ordering invariant: integrated > random > modular.
func DefaultScale() Scale {
	return Scale{
		system.ArchIntegrated: 74.5,
		system.ArchModular:    3.2,
		system.ArchRandom:     12.8,
	}
}

// Evaluate returns the scale's constant for the complex's architecture.
func (s Scale) Evaluate(c *system.Complex) (float64, error) {
	return s.Phi(c.Architecture)
}

// Phi looks up the Φ value for an architecture directly, without a
// generated complex. Returns ErrUnscored for architectures the scale
// does not cover.
func (s Scale) Phi(arch system.Architecture) (float64, error) {
	v, ok := s[arch]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnscored, arch)
	}
	return v, nil
}

// Validate checks that the scale covers every architecture and preserves
// the reference ordering integrated > random > modular. Configuration
// loading rejects scales that invert the ordering, since the simulator's
// narrative depends on it.
func (s Scale) Validate() error {
	for _, arch := range system.Architectures() {
		if _, ok := s[arch]; !ok {
			return fmt.Errorf("%w: %s", ErrUnscored, arch)
		}
	}
	if !(s[system.ArchIntegrated] > s[system.ArchRandom] && s[system.ArchRandom] > s[system.ArchModular]) {
		return fmt.Errorf("scale must satisfy integrated > random > modular, got %v > %v > %v",
			s[system.ArchIntegrated], s[system.ArchRandom], s[system.ArchModular])
	}
	return nil
}
