package pagination

import (
	"github.com/go-playground/validator/v10"
)

// ColumnMetrics are the heuristic text metrics of a column
type ColumnMetrics struct {
	CharsPerLine int     `json:"chars_per_line" validate:"gt=0"`
	FontSize     float64 `json:"font_size" validate:"gt=0"`
}

// LayoutBudget holds the capacity constants governing how much content fits per page.
// All lengths are layout units (pixels at 96 DPI).
type LayoutBudget struct {
	PageWidth  float64 `json:"page_width" validate:"gt=0"`
	PageHeight float64 `json:"page_height" validate:"gt=0"`

	// Sidebar topology
	PrimaryColumnCapacity   float64 `json:"primary_column_capacity" validate:"gt=0"`
	SecondaryColumnCapacity float64 `json:"secondary_column_capacity" validate:"gt=0"`

	// Single-column topology
	PagePadding             float64 `json:"page_padding" validate:"gte=0"`
	FooterReserve           float64 `json:"footer_reserve" validate:"gte=0"`
	FirstPageHeaderReserve  float64 `json:"first_page_header_reserve" validate:"gte=0"`
	SubsequentHeaderReserve float64 `json:"subsequent_header_reserve" validate:"gte=0"`
	SectionSpacing          float64 `json:"section_spacing" validate:"gte=0"`
	MaxUnitsPerPage         int     `json:"max_units_per_page" validate:"gt=0"`

	Primary   ColumnMetrics `json:"primary"`
	Secondary ColumnMetrics `json:"secondary"`
}

// DefaultBudget returns the A4-like 800x1131 budget
func DefaultBudget() LayoutBudget {
	return LayoutBudget{
		PageWidth:               800,
		PageHeight:              1131,
		PrimaryColumnCapacity:   950,
		SecondaryColumnCapacity: 1050,
		PagePadding:             50,
		FooterReserve:           35,
		FirstPageHeaderReserve:  140,
		SubsequentHeaderReserve: 80,
		SectionSpacing:          32,
		MaxUnitsPerPage:         4,
		Primary:                 ColumnMetrics{CharsPerLine: 65, FontSize: 14},
		Secondary:               ColumnMetrics{CharsPerLine: 35, FontSize: 13},
	}
}

// HeaderReserve returns the height kept free above content on the page at pageIndex.
// Only page 0 carries the large header reserve.
func (b LayoutBudget) HeaderReserve(pageIndex int) float64 {
	if pageIndex == 0 {
		return b.FirstPageHeaderReserve
	}
	return b.SubsequentHeaderReserve
}

// ContentCapacity returns the usable single-column height of the page at pageIndex
func (b LayoutBudget) ContentCapacity(pageIndex int) float64 {
	return b.PageHeight - b.HeaderReserve(pageIndex) - b.FooterReserve - 2*b.PagePadding
}

// Metrics returns the text metrics of the given column
func (b LayoutBudget) Metrics(p Placement) ColumnMetrics {
	if p == PlacementSecondary {
		return b.Secondary
	}
	return b.Primary
}

// Capacity returns the sidebar-topology capacity of the given column
func (b LayoutBudget) Capacity(p Placement) float64 {
	if p == PlacementSecondary {
		return b.SecondaryColumnCapacity
	}
	return b.PrimaryColumnCapacity
}

// Validate checks field ranges and that every page keeps some content area
func (b LayoutBudget) Validate() error {
	validate := validator.New()
	if err := validate.Struct(b); err != nil {
		return &BudgetError{Message: "invalid layout budget", Cause: err}
	}
	if b.ContentCapacity(0) <= 0 || b.ContentCapacity(1) <= 0 {
		return &BudgetError{Message: "header, footer and padding reserves leave no content area"}
	}
	return nil
}
