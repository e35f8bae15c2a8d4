package topology

import (
	"math/rand/v2"

	"github.com/mwessel/phigrid/pkg/metric"
)

// DefaultGridWidth is the reference column count of the layout grid.
const DefaultGridWidth = 4

// DefaultElementCount is the reference number of elements per complex.
const DefaultElementCount = 16

// Option customizes a single Generate call.
type Option func(*options)

type options struct {
	gridWidth int
	rng       *rand.Rand
	evaluator metric.Evaluator
}

func defaultOptions() options {
	return options{
		gridWidth: DefaultGridWidth,
		evaluator: metric.DefaultScale(),
	}
}

// WithGridWidth sets the column count of the layout grid.
// Values below 1 are ignored.
func WithGridWidth(w int) Option {
	return func(o *options) {
		if w >= 1 {
			o.gridWidth = w
		}
	}
}

// WithRand sets the random source used by the random architecture.
// Tests pass a seeded source for reproducible wiring; by default every
// Generate call draws from a freshly seeded PCG, so repeated random
// generations differ.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed is shorthand for WithRand over a PCG seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithEvaluator sets the metric evaluator used to score the generated
// complex. Defaults to [metric.DefaultScale].
func WithEvaluator(ev metric.Evaluator) Option {
	return func(o *options) {
		if ev != nil {
			o.evaluator = ev
		}
	}
}
