package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleColumnPacker_EmptyInput(t *testing.T) {
	pages := SingleColumnPacker{}.Distribute(Units{}, DefaultBudget())
	require.Len(t, pages, 1)
	assert.Zero(t, pages[0].UnitCount())
}

func TestSingleColumnPacker_CapacityBreaksBeforeUnitCap(t *testing.T) {
	// 1131 - 140 - 35 - 100 = 856 available on the first page
	units := Units{Primary: []ContentUnit{
		fixedUnit("experience", PlacementPrimary, 720),
		fixedUnit("skills", PlacementPrimary, 200),
	}}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 2)
	assert.Equal(t, []string{"experience"}, columnIDs(pages[0], PlacementPrimary))
	assert.Equal(t, []string{"skills"}, columnIDs(pages[1], PlacementPrimary))
}

func TestSingleColumnPacker_UnitCap(t *testing.T) {
	var units Units
	for _, id := range []string{"summary", "education", "skills", "languages", "projects"} {
		units.Primary = append(units.Primary, fixedUnit(id, PlacementPrimary, 50))
	}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Primary, 4)
	assert.Equal(t, []string{"projects"}, columnIDs(pages[1], PlacementPrimary))
}

func TestSingleColumnPacker_SpacingCounts(t *testing.T) {
	// 400+32 + 400+32 = 864 > 856
	units := Units{Primary: []ContentUnit{
		fixedUnit("summary", PlacementPrimary, 400),
		fixedUnit("experience", PlacementPrimary, 400),
	}}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	assert.Len(t, pages, 2)
}

func TestSingleColumnPacker_LaterPagesUseSmallerHeaderReserve(t *testing.T) {
	// Page 0 holds 856, later pages 916.
	units := Units{Primary: []ContentUnit{
		fixedUnit("summary", PlacementPrimary, 800),
		fixedUnit("experience", PlacementPrimary, 440),
		fixedUnit("education", PlacementPrimary, 420),
	}}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 3)
	// 472 + 452 = 924 > 916
	assert.Equal(t, []string{"summary"}, columnIDs(pages[0], PlacementPrimary))
	assert.Equal(t, []string{"experience"}, columnIDs(pages[1], PlacementPrimary))
	assert.Equal(t, []string{"education"}, columnIDs(pages[2], PlacementPrimary))

	units.Primary[2].EstimatedHeight = 400
	pages = SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 2)
	// 472 + 432 = 904 fits the 916 of page 1 but not the 856 of page 0
	assert.Equal(t, []string{"experience", "education"}, columnIDs(pages[1], PlacementPrimary))
}

func TestSingleColumnPacker_OversizedUnitPlacedAlone(t *testing.T) {
	units := Units{Primary: []ContentUnit{
		fixedUnit("summary", PlacementPrimary, 100),
		fixedUnit("experience", PlacementPrimary, 2000),
		fixedUnit("education", PlacementPrimary, 100),
	}}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 3)
	assert.Equal(t, []string{"experience"}, columnIDs(pages[1], PlacementPrimary))
	assert.Equal(t, []string{"education"}, columnIDs(pages[2], PlacementPrimary))
}

func TestSingleColumnPacker_NeverUsesSecondaryColumn(t *testing.T) {
	units := Units{
		Primary:   []ContentUnit{fixedUnit("summary", PlacementPrimary, 100)},
		Secondary: []ContentUnit{fixedUnit("languages", PlacementSecondary, 100)},
	}

	pages := SingleColumnPacker{}.Distribute(units, DefaultBudget())
	require.Len(t, pages, 1)
	assert.Equal(t, []string{"summary", "languages"}, columnIDs(pages[0], PlacementPrimary))
	assert.Empty(t, pages[0].Secondary)
}

func TestNewPacker(t *testing.T) {
	assert.IsType(t, SidebarPacker{}, NewPacker(TopologySidebar))
	assert.IsType(t, SingleColumnPacker{}, NewPacker(TopologySingleColumn))
}

func TestParseTopology(t *testing.T) {
	top, err := ParseTopology("")
	require.NoError(t, err)
	assert.Equal(t, TopologySidebar, top)

	top, err = ParseTopology("single-column")
	require.NoError(t, err)
	assert.Equal(t, TopologySingleColumn, top)

	_, err = ParseTopology("three-column")
	assert.Error(t, err)
}
