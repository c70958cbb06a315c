package pagination

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// lineHeightFactor converts a font size to a line height
	lineHeightFactor = 1.2
	// defaultUnitHeight is used for unit types without a formula
	defaultUnitHeight = 40
	// skillsHeightCap bounds the sidebar skills block
	skillsHeightCap = 280
)

// HeightEstimator computes the expected rendered height of a unit.
// Implementations must be pure: identical input yields identical output.
type HeightEstimator interface {
	Estimate(unit ContentUnit, column ColumnMetrics) float64
}

// HeuristicEstimator estimates heights from character counts and calibrated
// per-type overheads instead of real text metrics.
type HeuristicEstimator struct{}

// TextHeight estimates the height of free text wrapped at column.CharsPerLine.
// Each explicit line break starts a new line; an empty line contributes nothing.
func TextHeight(text string, column ColumnMetrics) float64 {
	height := 0.0
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(strings.TrimSuffix(line, "\r"))
		wrapped := math.Ceil(float64(n) / float64(column.CharsPerLine))
		height += wrapped * column.FontSize * lineHeightFactor
	}
	return height
}

// Estimate implements HeightEstimator
func (HeuristicEstimator) Estimate(unit ContentUnit, column ColumnMetrics) float64 {
	count := float64(unit.ItemCount)
	single := unit.Topology == TopologySingleColumn

	switch {
	case unit.Type == UnitAbout || unit.Type == UnitSummary:
		return TextHeight(unit.Text, column) + 60
	case unit.Type == UnitExperience && single:
		return 120 + 120*count
	case unit.Type == UnitExperience:
		return TextHeight(unit.Text, column) + 80
	case unit.Type == UnitEducation && single:
		return 80 + 80*count
	case unit.Type == UnitEducation:
		return TextHeight(unit.Text, column) + 60
	case unit.Type == UnitProjects:
		return 80 + 80*count
	case unit.Type == UnitCertification || unit.Type == UnitCertifications:
		return 45
	case unit.Type.IsCustom():
		return TextHeight(unit.Text, column) + 60
	case unit.Type == UnitContact:
		return 120
	case unit.Type == UnitSkills && single:
		return 80 + math.Ceil(count/2)*40
	case unit.Type == UnitSkills:
		return math.Min(count*35+60, skillsHeightCap)
	case unit.Type == UnitLanguages:
		return count*25 + 60
	default:
		return defaultUnitHeight
	}
}

// checkHeight rejects estimates that could corrupt packing
func checkHeight(unit ContentUnit) error {
	h := unit.EstimatedHeight
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return &EstimateError{UnitID: unit.ID, Height: h}
	}
	return nil
}
