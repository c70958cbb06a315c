package pagination

// SingleColumnPacker fills pages top to bottom in priority order, capping each
// page at budget.MaxUnitsPerPage units even when more would fit.
type SingleColumnPacker struct{}

// Distribute implements PagePacker
func (SingleColumnPacker) Distribute(units Units, budget LayoutBudget) []Page {
	var (
		list   pageList
		height float64
	)

	for _, u := range units.All() {
		u.Placement = PlacementPrimary
		step := u.EstimatedHeight + budget.SectionSpacing
		available := budget.ContentCapacity(len(list.pages))
		n := len(list.current.Primary)

		if n > 0 && n < budget.MaxUnitsPerPage && height+step <= available {
			list.current.Primary = append(list.current.Primary, u)
			height += step
			continue
		}

		// Start a new page with u alone, even if u overflows it.
		if n > 0 {
			list.close()
		}
		list.current.Primary = append(list.current.Primary, u)
		height = step
	}

	return list.finish()
}
