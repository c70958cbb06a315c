package pagination

// Navigation targets for the edit controller
const (
	PathPersonalInformation = "/personal-information"
	PathSummary             = "/summary"
	PathWorkExperience      = "/work-experience-details"
	PathEducation           = "/education-details"
	PathCertifications      = "/certifications"
	PathSkills              = "/skills"
	PathLanguages           = "/languages"
	PathProjects            = "/projects"
	PathCustomSections      = "/custom-sections"
	PathDefault             = "/"
)

var navigationTargets = map[UnitType]string{
	UnitHeader:         PathPersonalInformation,
	UnitContact:        PathPersonalInformation,
	UnitAbout:          PathSummary,
	UnitSummary:        PathSummary,
	UnitExperience:     PathWorkExperience,
	UnitEducation:      PathEducation,
	UnitCertification:  PathCertifications,
	UnitCertifications: PathCertifications,
	UnitSkills:         PathSkills,
	UnitLanguages:      PathLanguages,
	UnitProjects:       PathProjects,
}

// NavigationTarget returns the edit route for a unit type
func NavigationTarget(t UnitType) string {
	if t.IsCustom() {
		return PathCustomSections
	}
	if path, ok := navigationTargets[t]; ok {
		return path
	}
	return PathDefault
}

// AnnotatedUnit is a placed unit with its editing affordances
type AnnotatedUnit struct {
	ContentUnit
	NavigationTarget string `json:"navigation_target"`
	CanDelete        bool   `json:"can_delete"`
	CanMoveUp        bool   `json:"can_move_up"`
	CanMoveDown      bool   `json:"can_move_down"`
}

// AnnotatedPage is a packed page whose units carry editing affordances
type AnnotatedPage struct {
	Index     int             `json:"index"`
	Primary   []AnnotatedUnit `json:"primary"`
	Secondary []AnnotatedUnit `json:"secondary"`
	Metrics   PageMetrics     `json:"metrics"`
}

// Annotate derives per-unit capabilities from final placement.
// It never changes placement or heights.
func Annotate(pages []Page) []AnnotatedPage {
	out := make([]AnnotatedPage, len(pages))
	for i := range pages {
		out[i] = AnnotatedPage{
			Index:     pages[i].Index,
			Primary:   annotateColumn(pages[i].Primary),
			Secondary: annotateColumn(pages[i].Secondary),
		}
	}
	return out
}

// annotateColumn computes move eligibility against same-family siblings of
// one page/column segment.
func annotateColumn(units []ContentUnit) []AnnotatedUnit {
	out := make([]AnnotatedUnit, len(units))

	groups := make(map[UnitType][]int)
	for i, u := range units {
		f := u.Type.Family()
		groups[f] = append(groups[f], i)
	}

	for _, idx := range groups {
		for pos, i := range idx {
			u := units[i]
			a := AnnotatedUnit{
				ContentUnit:      u,
				NavigationTarget: NavigationTarget(u.Type),
			}
			if !u.Type.IsStructural() {
				a.CanDelete = true
				a.CanMoveUp = pos > 0
				a.CanMoveDown = pos < len(idx)-1
			}
			out[i] = a
		}
	}
	return out
}
