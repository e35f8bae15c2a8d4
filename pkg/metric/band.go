package metric

// Band is a coarse three-way classification of a Φ value, used by
// presentation layers for color coding the readout.
type Band int

const (
	// BandLow covers values at or below the medium threshold.
	BandLow Band = iota
	// BandMedium covers values above the medium threshold.
	BandMedium
	// BandHigh covers values above the high threshold.
	BandHigh
)

// String returns the band's display name.
func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

// Thresholds define the band boundaries. Values strictly above High are
// BandHigh; strictly above Medium are BandMedium; everything else is
// BandLow.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns the reference band boundaries (50 and 10).
func DefaultThresholds() Thresholds {
	return Thresholds{High: 50, Medium: 10}
}

// Classify places phi into a band.
func (t Thresholds) Classify(phi float64) Band {
	switch {
	case phi > t.High:
		return BandHigh
	case phi > t.Medium:
		return BandMedium
	default:
		return BandLow
	}
}
