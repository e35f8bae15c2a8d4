package metric

import (
	"errors"
	"testing"

	"github.com/mwessel/phigrid/pkg/system"
)

func TestDefaultScaleValues(t *testing.T) {
	s := DefaultScale()
	tests := []struct {
		arch system.Architecture
		want float64
	}{
		{system.ArchIntegrated, 74.5},
		{system.ArchModular, 3.2},
		{system.ArchRandom, 12.8},
	}
	for _, tt := range tests {
		got, err := s.Phi(tt.arch)
		if err != nil {
			t.Fatalf("Phi(%s) error: %v", tt.arch, err)
		}
		if got != tt.want {
			t.Errorf("Phi(%s) = %v, want %v", tt.arch, got, tt.want)
		}
	}
}

func TestDefaultScaleOrdering(t *testing.T) {
	if err := DefaultScale().Validate(); err != nil {
		t.Errorf("DefaultScale().Validate() = %v", err)
	}
}

func TestScaleValidateRejectsInvertedOrdering(t *testing.T) {
	s := Scale{
		system.ArchIntegrated: 1,
		system.ArchModular:    50,
		system.ArchRandom:     10,
	}
	if err := s.Validate(); err == nil {
		t.Error("Validate() accepted an inverted ordering")
	}
}

func TestScaleValidateRejectsMissingEntry(t *testing.T) {
	s := Scale{system.ArchIntegrated: 74.5}
	if err := s.Validate(); !errors.Is(err, ErrUnscored) {
		t.Errorf("Validate() = %v, want ErrUnscored", err)
	}
}

func TestScaleUnscored(t *testing.T) {
	s := Scale{}
	if _, err := s.Phi(system.ArchIntegrated); !errors.Is(err, ErrUnscored) {
		t.Errorf("Phi on empty scale = %v, want ErrUnscored", err)
	}
}

func TestScaleIgnoresGraphStructure(t *testing.T) {
	// The label-driven scale is a pure function of the architecture: an
	// empty graph scores the same as a fully wired one.
	g := system.NewGraph(nil)
	c := system.NewComplex(g, system.ArchModular, 0)
	got, err := DefaultScale().Evaluate(c)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got != 3.2 {
		t.Errorf("Evaluate = %v, want 3.2", got)
	}
}

func TestThresholdsClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		phi  float64
		want Band
	}{
		{74.5, BandHigh},
		{50.1, BandHigh},
		{50, BandMedium},
		{12.8, BandMedium},
		{10.1, BandMedium},
		{10, BandLow},
		{3.2, BandLow},
		{0, BandLow},
	}
	for _, tt := range tests {
		if got := th.Classify(tt.phi); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.phi, got, tt.want)
		}
	}
}

func TestBandString(t *testing.T) {
	if BandHigh.String() != "high" || BandMedium.String() != "medium" || BandLow.String() != "low" {
		t.Error("unexpected band names")
	}
}
