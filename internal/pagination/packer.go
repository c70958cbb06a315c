package pagination

import "fmt"

// Topology selects the page layout and with it the packing strategy
type Topology string

const (
	// TopologySidebar splits each page into a primary column and a sidebar
	TopologySidebar Topology = "sidebar"
	// TopologySingleColumn stacks all sections in one column
	TopologySingleColumn Topology = "single-column"
)

// ParseTopology converts a configuration string into a Topology.
// An empty string selects the sidebar layout.
func ParseTopology(s string) (Topology, error) {
	switch Topology(s) {
	case "", TopologySidebar:
		return TopologySidebar, nil
	case TopologySingleColumn:
		return TopologySingleColumn, nil
	default:
		return "", fmt.Errorf("unknown topology %q (expected %q or %q)", s, TopologySidebar, TopologySingleColumn)
	}
}

// Page is the packing result for one physical page.
// Single-column pages only use Primary.
type Page struct {
	Index     int           `json:"index"`
	Primary   []ContentUnit `json:"primary"`
	Secondary []ContentUnit `json:"secondary"`
}

// UnitCount returns the number of units on the page across both columns
func (p *Page) UnitCount() int {
	return len(p.Primary) + len(p.Secondary)
}

// Column returns the units placed in the given column
func (p *Page) Column(placement Placement) []ContentUnit {
	if placement == PlacementSecondary {
		return p.Secondary
	}
	return p.Primary
}

// PagePacker assigns units to pages and columns.
// Every input unit appears exactly once in the output, in input order per column,
// and the output always holds at least one page.
type PagePacker interface {
	Distribute(units Units, budget LayoutBudget) []Page
}

// NewPacker returns the packing strategy for a topology
func NewPacker(topology Topology) PagePacker {
	if topology == TopologySingleColumn {
		return SingleColumnPacker{}
	}
	return SidebarPacker{}
}

// pageList accumulates closed pages and owns the page being filled
type pageList struct {
	pages   []Page
	current Page
}

// close pushes the current page and opens the next one
func (l *pageList) close() {
	l.current.Index = len(l.pages)
	l.pages = append(l.pages, l.current)
	l.current = Page{}
}

// finish pushes a non-empty current page and guarantees at least one page
func (l *pageList) finish() []Page {
	if l.current.UnitCount() > 0 {
		l.close()
	}
	if len(l.pages) == 0 {
		l.close()
	}
	return l.pages
}
