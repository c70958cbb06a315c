package pagination

// SidebarPacker fills the secondary column first, then the primary column,
// closing a page whenever the next unit would overflow the column it targets.
//
// Primary packing resumes on whatever page secondary packing left open rather
// than restarting at page 0. When the sidebar alone spans several pages, the
// primary column therefore starts on the last of them and earlier pages carry
// an empty primary column. This is kept for layout compatibility.
type SidebarPacker struct{}

// sidebarState is the packing state shared by both column passes
type sidebarState struct {
	pageList
	primaryHeight   float64
	secondaryHeight float64
}

func (s *sidebarState) closePage() {
	s.close()
	s.primaryHeight = 0
	s.secondaryHeight = 0
}

// place appends u to its column, opening a new page first when u would overflow
// a column that already holds a unit. An oversized unit still gets placed.
func (s *sidebarState) place(u ContentUnit, capacity float64) {
	if u.Placement == PlacementSecondary {
		if s.secondaryHeight+u.EstimatedHeight > capacity && len(s.current.Secondary) > 0 {
			s.closePage()
		}
		s.current.Secondary = append(s.current.Secondary, u)
		s.secondaryHeight += u.EstimatedHeight
		return
	}

	if s.primaryHeight+u.EstimatedHeight > capacity && len(s.current.Primary) > 0 {
		s.closePage()
	}
	s.current.Primary = append(s.current.Primary, u)
	s.primaryHeight += u.EstimatedHeight
}

// Distribute implements PagePacker
func (SidebarPacker) Distribute(units Units, budget LayoutBudget) []Page {
	var s sidebarState

	for _, u := range units.Secondary {
		u.Placement = PlacementSecondary
		s.place(u, budget.SecondaryColumnCapacity)
	}
	// No page reset between passes: see the type comment.
	for _, u := range units.Primary {
		u.Placement = PlacementPrimary
		s.place(u, budget.PrimaryColumnCapacity)
	}

	return s.finish()
}
