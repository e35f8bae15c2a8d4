package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwessel/phigrid/pkg/metric"
	"github.com/mwessel/phigrid/pkg/system"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - high Φ / success
	colorYellow = lipgloss.Color("220") // Amber - medium Φ / warnings
	colorRed    = lipgloss.Color("167") // Soft red - low Φ / errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel     = lipgloss.NewStyle().Foreground(colorGray)
	styleSelected  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleBandHigh  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleBandMed   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleBandLow   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleIconError = lipgloss.NewStyle().Foreground(colorRed)
	styleIconOK    = lipgloss.NewStyle().Foreground(colorGreen)
)

// bandStyle maps a Φ band to its readout style.
func bandStyle(b metric.Band) lipgloss.Style {
	switch b {
	case metric.BandHigh:
		return styleBandHigh
	case metric.BandMedium:
		return styleBandMed
	default:
		return styleBandLow
	}
}

// archNodeStyle colors grid nodes per architecture, mirroring the bands
// their reference Φ values fall into.
func archNodeStyle(arch system.Architecture) lipgloss.Style {
	switch arch {
	case system.ArchIntegrated:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case system.ArchRandom:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return lipgloss.NewStyle().Foreground(colorRed)
	}
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message to stdout.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}
