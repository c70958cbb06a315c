package pagination

import (
	"sort"
	"testing"

	"github.com/jonathan/resume-paginator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, topology Topology) *Engine {
	t.Helper()
	e, err := NewEngine(topology, DefaultBudget())
	require.NoError(t, err)
	return e
}

func resultIDs(r *Result) []string {
	var ids []string
	for _, p := range r.Pages {
		for _, u := range p.Primary {
			ids = append(ids, u.ID)
		}
		for _, u := range p.Secondary {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func TestNewEngine_Validation(t *testing.T) {
	_, err := NewEngine("diagonal", DefaultBudget())
	assert.Error(t, err)

	bad := DefaultBudget()
	bad.MaxUnitsPerPage = 0
	_, err = NewEngine(TopologySingleColumn, bad)
	var budgetErr *BudgetError
	assert.ErrorAs(t, err, &budgetErr)
}

func TestPaginate_SummaryOnly(t *testing.T) {
	doc := &types.Document{PersonalInfo: types.PersonalInfo{Summary: "Hi"}}

	res, err := newTestEngine(t, TopologySidebar).Paginate(doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.PageCount())
	require.Len(t, res.Pages[0].Primary, 1)

	u := res.Pages[0].Primary[0]
	assert.Equal(t, UnitAbout, u.Type)
	assert.InDelta(t, 76.8, u.EstimatedHeight, 1e-9)
	assert.True(t, u.CanDelete)
	assert.False(t, u.CanMoveUp)
	assert.False(t, u.CanMoveDown)
	assert.Equal(t, 1, res.UnitCount)
	assert.Equal(t, TopologySidebar, res.Topology)
}

func TestPaginate_SidebarSkillsAndContact(t *testing.T) {
	doc := &types.Document{PersonalInfo: types.PersonalInfo{Email: "jane@example.com"}}
	for i := 0; i < 40; i++ {
		doc.Skills = append(doc.Skills, types.Skill{Name: "skill"})
	}

	res, err := newTestEngine(t, TopologySidebar).Paginate(doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.PageCount())

	page := res.Pages[0]
	assert.Empty(t, page.Primary)
	require.Len(t, page.Secondary, 2)
	assert.Equal(t, UnitContact, page.Secondary[0].Type)
	assert.Equal(t, UnitSkills, page.Secondary[1].Type)
	assert.InDelta(t, 280, page.Secondary[1].EstimatedHeight, 1e-9)
	assert.InDelta(t, 400, page.Metrics.SecondaryHeight, 1e-9)
	assert.False(t, page.Metrics.Overflow)
}

func TestPaginate_SingleColumnAggregateExperience(t *testing.T) {
	doc := &types.Document{Experience: make([]types.Experience, 5)}

	res, err := newTestEngine(t, TopologySingleColumn).Paginate(doc)
	require.NoError(t, err)
	require.Equal(t, 1, res.PageCount())
	require.Len(t, res.Pages[0].Primary, 1)
	assert.InDelta(t, 720, res.Pages[0].Primary[0].EstimatedHeight, 1e-9)
	assert.InDelta(t, 856, res.Pages[0].Metrics.PrimaryCapacity, 1e-9)
	assert.Empty(t, res.Pages[0].Secondary)
}

func TestPaginate_OversizedExperience(t *testing.T) {
	// 120 full lines: 120*16.8 + 80 = 2096, beyond both column capacities
	long := make([]byte, 0, 65*120)
	for i := 0; i < 120; i++ {
		long = append(long, []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n")...)
	}
	doc := &types.Document{
		PersonalInfo: types.PersonalInfo{Summary: "Hi"},
		Experience:   []types.Experience{{Description: string(long)}},
	}

	res, err := newTestEngine(t, TopologySidebar).Paginate(doc)
	require.NoError(t, err)
	require.Equal(t, 2, res.PageCount())

	big := res.Pages[1].Primary
	require.Len(t, big, 1)
	assert.Equal(t, "experience-0", big[0].ID)
	assert.Greater(t, big[0].EstimatedHeight, DefaultBudget().SecondaryColumnCapacity)
	assert.True(t, res.Pages[1].Metrics.Overflow)
	assert.False(t, res.Pages[0].Metrics.Overflow)
}

func TestPaginate_EmptyDocument(t *testing.T) {
	for _, topology := range []Topology{TopologySidebar, TopologySingleColumn} {
		for _, doc := range []*types.Document{nil, {}} {
			res, err := newTestEngine(t, topology).Paginate(doc)
			require.NoError(t, err)
			require.Equal(t, 1, res.PageCount(), topology)
			assert.Empty(t, res.Pages[0].Primary)
			assert.Empty(t, res.Pages[0].Secondary)
			assert.Zero(t, res.UnitCount)
		}
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	for _, topology := range []Topology{TopologySidebar, TopologySingleColumn} {
		e := newTestEngine(t, topology)
		doc := randomDocument(42)

		a, err := e.Paginate(doc)
		require.NoError(t, err)
		b, err := e.Paginate(doc)
		require.NoError(t, err)

		assert.Equal(t, a.Pages, b.Pages, topology)
		assert.NotEqual(t, a.RunID, b.RunID, "each run gets its own ID")
	}
}

func TestPaginate_Properties(t *testing.T) {
	budget := DefaultBudget()

	for _, topology := range []Topology{TopologySidebar, TopologySingleColumn} {
		e := newTestEngine(t, topology)
		extractor := NewExtractor(nil, budget)

		for seed := int64(0); seed < 200; seed++ {
			doc := randomDocument(seed)
			units, err := extractor.Extract(doc, topology)
			require.NoError(t, err)

			res, err := e.Paginate(doc)
			require.NoError(t, err)
			require.NotEmpty(t, res.Pages)

			// completeness
			want := unitIDs(units.All())
			got := resultIDs(res)
			sort.Strings(want)
			sort.Strings(got)
			require.Equal(t, want, got, "seed %d %s", seed, topology)

			lastIndex := make(map[string]int)
			for pi, page := range res.Pages {
				assert.Equal(t, pi, page.Index)

				for _, col := range [][]AnnotatedUnit{page.Primary, page.Secondary} {
					// order preservation within each source array
					for _, u := range col {
						if u.Source == nil {
							continue
						}
						key := string(u.Type) + "/" + u.Source.Section
						if prev, ok := lastIndex[key]; ok {
							assert.Greater(t, u.Source.Index, prev, "seed %d unit %s", seed, u.ID)
						}
						lastIndex[key] = u.Source.Index
					}
				}

				// soft capacity: only single-unit columns may overflow
				if len(page.Primary) > 1 {
					assert.LessOrEqual(t, page.Metrics.PrimaryHeight, page.Metrics.PrimaryCapacity, "seed %d page %d", seed, pi)
				}
				if len(page.Secondary) > 1 {
					assert.LessOrEqual(t, page.Metrics.SecondaryHeight, page.Metrics.SecondaryCapacity, "seed %d page %d", seed, pi)
				}
				if topology == TopologySingleColumn {
					assert.LessOrEqual(t, len(page.Primary), budget.MaxUnitsPerPage)
					assert.Empty(t, page.Secondary)
				}
			}
		}
	}
}

func TestPaginate_SiblingCapabilityProperty(t *testing.T) {
	e := newTestEngine(t, TopologySidebar)

	for seed := int64(0); seed < 100; seed++ {
		res, err := e.Paginate(randomDocument(seed))
		require.NoError(t, err)

		for _, page := range res.Pages {
			for _, col := range [][]AnnotatedUnit{page.Primary, page.Secondary} {
				groups := make(map[UnitType][]AnnotatedUnit)
				for _, u := range col {
					groups[u.Type.Family()] = append(groups[u.Type.Family()], u)
				}
				for family, group := range groups {
					if family.IsStructural() {
						continue
					}
					for i, u := range group {
						assert.Equal(t, i > 0, u.CanMoveUp, "seed %d unit %s", seed, u.ID)
						assert.Equal(t, i < len(group)-1, u.CanMoveDown, "seed %d unit %s", seed, u.ID)
					}
				}
			}
		}
	}
}

type constantEstimator float64

func (c constantEstimator) Estimate(ContentUnit, ColumnMetrics) float64 { return float64(c) }

func TestPaginate_InjectedEstimator(t *testing.T) {
	e, err := NewEngine(TopologySidebar, DefaultBudget(), WithEstimator(constantEstimator(500)))
	require.NoError(t, err)

	doc := &types.Document{Experience: make([]types.Experience, 3)}
	res, err := e.Paginate(doc)
	require.NoError(t, err)
	// 500 + 500 > 950 so every experience gets its own page
	assert.Equal(t, 3, res.PageCount())
}

// onePerPagePacker puts every unit on its own page, secondary units first
type onePerPagePacker struct {
	budgets *[]LayoutBudget
}

func (p onePerPagePacker) Distribute(units Units, budget LayoutBudget) []Page {
	*p.budgets = append(*p.budgets, budget)
	var pages []Page
	for _, u := range units.Secondary {
		pages = append(pages, Page{Index: len(pages), Secondary: []ContentUnit{u}})
	}
	for _, u := range units.Primary {
		pages = append(pages, Page{Index: len(pages), Primary: []ContentUnit{u}})
	}
	return pages
}

func TestPaginate_InjectedPacker(t *testing.T) {
	var budgets []LayoutBudget
	budget := DefaultBudget()
	e, err := NewEngine(TopologySidebar, budget, WithPacker(onePerPagePacker{budgets: &budgets}))
	require.NoError(t, err)

	doc := &types.Document{
		PersonalInfo: types.PersonalInfo{Summary: "Hi", Phone: "555-0100"},
		Experience:   make([]types.Experience, 2),
	}
	res, err := e.Paginate(doc)
	require.NoError(t, err)

	require.Len(t, budgets, 1)
	assert.Equal(t, budget, budgets[0])

	// contact, about, experience-0, experience-1
	require.Equal(t, 4, res.PageCount())
	assert.Equal(t, 4, res.UnitCount)
	assert.Equal(t, []string{"contact", "about", "experience-0", "experience-1"}, resultIDs(res))

	contact := res.Pages[0]
	require.Len(t, contact.Secondary, 1)
	assert.Empty(t, contact.Primary)
	assert.Equal(t, "/personal-information", contact.Secondary[0].NavigationTarget)
	assert.False(t, contact.Secondary[0].CanDelete)
	assert.InDelta(t, 120, contact.Metrics.SecondaryHeight, 1e-9)
	assert.Zero(t, contact.Metrics.PrimaryHeight)

	// Siblings split across pages are each alone in their segment
	for _, page := range res.Pages[2:] {
		require.Len(t, page.Primary, 1)
		u := page.Primary[0]
		assert.True(t, u.CanDelete)
		assert.False(t, u.CanMoveUp)
		assert.False(t, u.CanMoveDown)
		assert.InDelta(t, u.EstimatedHeight, page.Metrics.PrimaryHeight, 1e-9)
		assert.Equal(t, budget.PrimaryColumnCapacity, page.Metrics.PrimaryCapacity)
		assert.False(t, page.Metrics.Overflow)
	}
}

func TestWithPacker_NilKeepsDefault(t *testing.T) {
	e, err := NewEngine(TopologySingleColumn, DefaultBudget(), WithPacker(nil))
	require.NoError(t, err)
	assert.Equal(t, SingleColumnPacker{}, e.packer)
}

func TestPaginate_BrokenEstimator(t *testing.T) {
	e, err := NewEngine(TopologySidebar, DefaultBudget(), WithEstimator(constantEstimator(-1)))
	require.NoError(t, err)

	_, err = e.Paginate(&types.Document{Skills: []types.Skill{{Name: "Go"}}})
	var estErr *EstimateError
	assert.ErrorAs(t, err, &estErr)
}
