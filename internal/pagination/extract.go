package pagination

import (
	"fmt"

	"github.com/jonathan/resume-paginator/internal/types"
)

// Section names used in SourceRef
const (
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionCustom         = "custom_sections"
)

// Single-column ordering priorities. Custom section i gets priorityCustomBase+i.
const (
	prioritySummary = iota + 1
	priorityExperience
	priorityEducation
	prioritySkills
	priorityProjects
	priorityCertifications
	priorityLanguages
	priorityCustomBase
)

// Extractor maps document sections to height-estimated content units
type Extractor struct {
	estimator HeightEstimator
	budget    LayoutBudget
}

// NewExtractor creates an Extractor; a nil estimator selects HeuristicEstimator
func NewExtractor(estimator HeightEstimator, budget LayoutBudget) *Extractor {
	if estimator == nil {
		estimator = HeuristicEstimator{}
	}
	return &Extractor{estimator: estimator, budget: budget}
}

// Extract builds the units of doc for the given topology.
// Empty sections never produce placeholder units; a custom section with
// neither title nor content counts as empty.
func (x *Extractor) Extract(doc *types.Document, topology Topology) (Units, error) {
	if doc == nil {
		doc = &types.Document{}
	}

	var units Units
	if topology == TopologySingleColumn {
		units.Primary = x.singleColumnUnits(doc)
	} else {
		units = x.sidebarUnits(doc)
	}

	for _, list := range [][]ContentUnit{units.Primary, units.Secondary} {
		for i := range list {
			metrics := x.budget.Metrics(list[i].Placement)
			list[i].EstimatedHeight = x.estimator.Estimate(list[i], metrics)
			if err := checkHeight(list[i]); err != nil {
				return Units{}, err
			}
		}
	}
	return units, nil
}

func (x *Extractor) sidebarUnits(doc *types.Document) Units {
	var primary, secondary []ContentUnit

	add := func(dst *[]ContentUnit, u ContentUnit) {
		u.Topology = TopologySidebar
		*dst = append(*dst, u)
	}

	if doc.PersonalInfo.Summary != "" {
		add(&primary, ContentUnit{
			ID:        string(UnitAbout),
			Type:      UnitAbout,
			Placement: PlacementPrimary,
			Text:      doc.PersonalInfo.Summary,
		})
	}
	for i, exp := range doc.Experience {
		add(&primary, ContentUnit{
			ID:         fmt.Sprintf("%s-%d", UnitExperience, i),
			Type:       UnitExperience,
			Placement:  PlacementPrimary,
			Source:     &SourceRef{Section: SectionExperience, Index: i},
			Splittable: true,
			Text:       exp.Description,
		})
	}
	for i, edu := range doc.Education {
		add(&primary, ContentUnit{
			ID:         fmt.Sprintf("%s-%d", UnitEducation, i),
			Type:       UnitEducation,
			Placement:  PlacementPrimary,
			Source:     &SourceRef{Section: SectionEducation, Index: i},
			Splittable: true,
			Text:       edu.Description,
		})
	}
	for i := range doc.Certifications {
		add(&primary, ContentUnit{
			ID:        fmt.Sprintf("%s-%d", UnitCertification, i),
			Type:      UnitCertification,
			Placement: PlacementPrimary,
			Source:    &SourceRef{Section: SectionCertifications, Index: i},
		})
	}
	for i, cs := range doc.CustomSections {
		if cs.IsBlank() || cs.InSecondaryColumn() {
			continue
		}
		add(&primary, customUnit(UnitCustomMain, PlacementPrimary, i, cs))
	}

	if doc.PersonalInfo.HasContact() {
		add(&secondary, ContentUnit{
			ID:        string(UnitContact),
			Type:      UnitContact,
			Placement: PlacementSecondary,
		})
	}
	if len(doc.Skills) > 0 {
		add(&secondary, ContentUnit{
			ID:        string(UnitSkills),
			Type:      UnitSkills,
			Placement: PlacementSecondary,
			ItemCount: len(doc.Skills),
		})
	}
	if len(doc.Languages) > 0 {
		add(&secondary, ContentUnit{
			ID:        string(UnitLanguages),
			Type:      UnitLanguages,
			Placement: PlacementSecondary,
			ItemCount: len(doc.Languages),
		})
	}
	for i, cs := range doc.CustomSections {
		if cs.IsBlank() || !cs.InSecondaryColumn() {
			continue
		}
		add(&secondary, customUnit(UnitCustomSidebar, PlacementSecondary, i, cs))
	}

	return Units{Primary: primary, Secondary: secondary}
}

func customUnit(t UnitType, p Placement, i int, cs types.CustomSection) ContentUnit {
	return ContentUnit{
		ID:         fmt.Sprintf("%s-%d", t, i),
		Type:       t,
		Placement:  p,
		Source:     &SourceRef{Section: SectionCustom, Index: i},
		Splittable: true,
		Text:       cs.Content,
	}
}

// singleColumnUnits returns units in ascending priority order.
// Sections are built in priority order, so no sort is needed.
func (x *Extractor) singleColumnUnits(doc *types.Document) []ContentUnit {
	var units []ContentUnit

	add := func(u ContentUnit) {
		u.Topology = TopologySingleColumn
		u.Placement = PlacementPrimary
		if u.ID == "" {
			u.ID = string(u.Type)
		}
		units = append(units, u)
	}

	if doc.PersonalInfo.Summary != "" {
		add(ContentUnit{Type: UnitSummary, Priority: prioritySummary, Text: doc.PersonalInfo.Summary})
	}
	if n := len(doc.Experience); n > 0 {
		add(ContentUnit{Type: UnitExperience, Priority: priorityExperience, ItemCount: n, Splittable: true})
	}
	if n := len(doc.Education); n > 0 {
		add(ContentUnit{Type: UnitEducation, Priority: priorityEducation, ItemCount: n, Splittable: true})
	}
	if n := len(doc.Skills); n > 0 {
		add(ContentUnit{Type: UnitSkills, Priority: prioritySkills, ItemCount: n})
	}
	if n := len(doc.Projects); n > 0 {
		add(ContentUnit{Type: UnitProjects, Priority: priorityProjects, ItemCount: n, Splittable: true})
	}
	if n := len(doc.Certifications); n > 0 {
		add(ContentUnit{Type: UnitCertifications, Priority: priorityCertifications, ItemCount: n})
	}
	if n := len(doc.Languages); n > 0 {
		add(ContentUnit{Type: UnitLanguages, Priority: priorityLanguages, ItemCount: n})
	}
	for i, cs := range doc.CustomSections {
		if cs.IsBlank() {
			continue
		}
		add(ContentUnit{
			Type:       CustomUnitType(i),
			Priority:   priorityCustomBase + i,
			Source:     &SourceRef{Section: SectionCustom, Index: i},
			Splittable: true,
			Text:       cs.Content,
		})
	}

	return units
}
