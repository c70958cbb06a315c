package pagination

import (
	"math/rand"
	"strings"

	"github.com/jonathan/resume-paginator/internal/types"
)

// unitIDs returns the IDs of units in order
func unitIDs(units []ContentUnit) []string {
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	return ids
}

// columnIDs returns the IDs of one column of a packed page
func columnIDs(p Page, placement Placement) []string {
	return unitIDs(p.Column(placement))
}

// fixedUnit builds a unit with a preset height for packer tests
func fixedUnit(id string, placement Placement, height float64) ContentUnit {
	return ContentUnit{ID: id, Type: UnitType(strings.SplitN(id, "-", 2)[0]), Placement: placement, EstimatedHeight: height}
}

// randomText returns text of up to maxLen characters with occasional line breaks
func randomText(r *rand.Rand, maxLen int) string {
	n := r.Intn(maxLen + 1)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if r.Intn(40) == 0 {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteByte(byte('a' + r.Intn(26)))
	}
	return sb.String()
}

// randomDocument builds a document whose section sizes vary with the seed
func randomDocument(seed int64) *types.Document {
	r := rand.New(rand.NewSource(seed))
	doc := &types.Document{}

	if r.Intn(2) == 0 {
		doc.PersonalInfo.Summary = randomText(r, 600)
	}
	if r.Intn(2) == 0 {
		doc.PersonalInfo.Email = "jane@example.com"
	}
	for i := r.Intn(8); i > 0; i-- {
		doc.Experience = append(doc.Experience, types.Experience{Company: "Acme", Description: randomText(r, 1500)})
	}
	for i := r.Intn(4); i > 0; i-- {
		doc.Education = append(doc.Education, types.Education{School: "State", Description: randomText(r, 300)})
	}
	for i := r.Intn(30); i > 0; i-- {
		doc.Skills = append(doc.Skills, types.Skill{Name: "Go"})
	}
	for i := r.Intn(4); i > 0; i-- {
		doc.Projects = append(doc.Projects, types.Project{Name: "p"})
	}
	for i := r.Intn(5); i > 0; i-- {
		doc.Certifications = append(doc.Certifications, types.Certification{Name: "c"})
	}
	for i := r.Intn(4); i > 0; i-- {
		doc.Languages = append(doc.Languages, types.Language{Name: "English"})
	}
	for i := r.Intn(4); i > 0; i-- {
		placement := types.PlacementPrimary
		if r.Intn(2) == 0 {
			placement = types.PlacementSecondary
		}
		doc.CustomSections = append(doc.CustomSections, types.CustomSection{
			Title:     "Extra",
			Content:   randomText(r, 800),
			Placement: placement,
		})
	}
	return doc
}
