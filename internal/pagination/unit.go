package pagination

import (
	"fmt"
	"strings"
)

// UnitType identifies what a content unit renders as
type UnitType string

// Unit types used by the sidebar (two-column) topology
const (
	UnitHeader        UnitType = "header"
	UnitAbout         UnitType = "about"
	UnitExperience    UnitType = "experience"
	UnitEducation     UnitType = "education"
	UnitCertification UnitType = "certification"
	UnitCustomMain    UnitType = "customMain"
	UnitContact       UnitType = "contact"
	UnitSkills        UnitType = "skills"
	UnitLanguages     UnitType = "languages"
	UnitCustomSidebar UnitType = "customSidebar"
)

// Unit types used by the single-column topology. Experience, education,
// skills and languages share their names with the sidebar set.
const (
	UnitSummary        UnitType = "summary"
	UnitProjects       UnitType = "projects"
	UnitCertifications UnitType = "certifications"

	customPrefix = "custom-"
)

// CustomUnitType returns the single-column type of the i-th custom section
func CustomUnitType(i int) UnitType {
	return UnitType(fmt.Sprintf("%s%d", customPrefix, i))
}

// IsCustom reports whether t is any flavor of free-form custom section
func (t UnitType) IsCustom() bool {
	return t == UnitCustomMain || t == UnitCustomSidebar || strings.HasPrefix(string(t), customPrefix)
}

// Family returns the key used to group sibling units.
// Single-column custom sections collapse into one "custom" family.
func (t UnitType) Family() UnitType {
	if strings.HasPrefix(string(t), customPrefix) {
		return "custom"
	}
	return t
}

// IsStructural reports whether the unit is mandatory and may never be deleted or moved
func (t UnitType) IsStructural() bool {
	return t == UnitContact || t == UnitHeader
}

// Placement is the column a unit belongs to
type Placement string

const (
	PlacementPrimary   Placement = "primary"
	PlacementSecondary Placement = "secondary"
)

// SourceRef points back at the document record a unit was built from
type SourceRef struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
}

// ContentUnit is one independently placeable fragment of a document.
// Units are created once per pagination run and never mutated afterwards.
type ContentUnit struct {
	ID              string     `json:"id"`
	Type            UnitType   `json:"unit_type"`
	Placement       Placement  `json:"placement"`
	Source          *SourceRef `json:"source_ref,omitempty"`
	EstimatedHeight float64    `json:"estimated_height"`
	Splittable      bool       `json:"splittable"`
	Priority        int        `json:"priority,omitempty"`

	// Estimation inputs
	Topology  Topology `json:"-"`
	Text      string   `json:"-"`
	ItemCount int      `json:"-"`
}

// Units is the extractor output: units per column in placement order.
// Single-column runs only populate Primary.
type Units struct {
	Primary   []ContentUnit
	Secondary []ContentUnit
}

// Len returns the total number of units
func (u Units) Len() int {
	return len(u.Primary) + len(u.Secondary)
}

// All returns every unit, primary first
func (u Units) All() []ContentUnit {
	all := make([]ContentUnit, 0, u.Len())
	all = append(all, u.Primary...)
	return append(all, u.Secondary...)
}
