// Package preview draws wireframe PDFs of packed pages for layout debugging.
//
// Every unit becomes a rectangle at its estimated height inside its column, so
// packing decisions can be checked by eye. No real typography is rendered.
package preview

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"github.com/jonathan/resume-paginator/internal/pagination"
)

const (
	columnGutter = 20.0
	labelSize    = 7.0
)

type rgb [3]int

var (
	primaryFill   = rgb{220, 232, 250}
	secondaryFill = rgb{226, 244, 226}
	overflowFill  = rgb{250, 215, 215}
	outlineColor  = rgb{90, 90, 90}
	guideColor    = rgb{200, 0, 0}
	reserveFill   = rgb{240, 240, 240}
)

// Options controls wireframe output
type Options struct {
	Title      string
	ShowLabels bool
}

// column is the horizontal slot a unit is drawn into
type column struct {
	x, width float64
}

// Renderer draws pagination results against a layout budget
type Renderer struct {
	budget  pagination.LayoutBudget
	options Options
}

// NewRenderer creates a Renderer for the given budget
func NewRenderer(budget pagination.LayoutBudget, options Options) *Renderer {
	return &Renderer{budget: budget, options: options}
}

// Render writes the wireframe PDF for result to w
func (r *Renderer) Render(w io.Writer, result *pagination.Result) error {
	if result == nil {
		return fmt.Errorf("nothing to render: result is nil")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.budget.PageWidth, Ht: r.budget.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if r.options.Title != "" {
		pdf.SetTitle(r.options.Title, true)
	}
	pdf.SetCreator("resume-paginator", true)

	for i := range result.Pages {
		pdf.AddPage()
		r.drawPage(pdf, result.Topology, &result.Pages[i], len(result.Pages))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to draw preview: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

func (r *Renderer) drawPage(pdf *fpdf.Fpdf, topology pagination.Topology, page *pagination.AnnotatedPage, total int) {
	b := r.budget
	top := b.PagePadding
	if topology == pagination.TopologySingleColumn {
		top += b.HeaderReserve(page.Index)
		setFill(pdf, reserveFill)
		pdf.Rect(b.PagePadding, b.PagePadding, b.PageWidth-2*b.PagePadding, top-b.PagePadding, "F")
	}

	// footer band
	setFill(pdf, reserveFill)
	pdf.Rect(0, b.PageHeight-b.FooterReserve, b.PageWidth, b.FooterReserve, "F")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.Text(b.PagePadding, b.PageHeight-b.FooterReserve/2, fmt.Sprintf("page %d/%d", page.Index+1, total))

	primary, secondary := r.columns(topology)

	r.drawColumn(pdf, primary, top, page.Primary, page.Metrics.PrimaryCapacity, topology)
	if topology != pagination.TopologySingleColumn {
		r.drawColumn(pdf, secondary, top, page.Secondary, page.Metrics.SecondaryCapacity, topology)
	}
}

// columns splits the content width in proportion to each column's characters per line
func (r *Renderer) columns(topology pagination.Topology) (primary, secondary column) {
	b := r.budget
	content := b.PageWidth - 2*b.PagePadding
	if topology == pagination.TopologySingleColumn {
		return column{x: b.PagePadding, width: content}, column{}
	}

	usable := content - columnGutter
	total := float64(b.Primary.CharsPerLine + b.Secondary.CharsPerLine)
	pw := usable * float64(b.Primary.CharsPerLine) / total
	primary = column{x: b.PagePadding, width: pw}
	secondary = column{x: b.PagePadding + pw + columnGutter, width: usable - pw}
	return primary, secondary
}

func (r *Renderer) drawColumn(pdf *fpdf.Fpdf, col column, top float64, units []pagination.AnnotatedUnit, capacity float64, topology pagination.Topology) {
	y := top
	for _, u := range units {
		fill := primaryFill
		if u.Placement == pagination.PlacementSecondary {
			fill = secondaryFill
		}
		if y-top+u.EstimatedHeight > capacity {
			fill = overflowFill
		}

		setFill(pdf, fill)
		setDraw(pdf, outlineColor)
		pdf.SetLineWidth(0.5)
		pdf.Rect(col.x, y, col.width, u.EstimatedHeight, "FD")

		if r.options.ShowLabels {
			pdf.SetFont("Helvetica", "", labelSize)
			pdf.SetTextColor(40, 40, 40)
			pdf.Text(col.x+3, y+labelSize+2, fmt.Sprintf("%s  %.0fpt%s", u.ID, u.EstimatedHeight, flags(u)))
		}

		y += u.EstimatedHeight
		if topology == pagination.TopologySingleColumn {
			y += r.budget.SectionSpacing
		}
	}

	// capacity guide
	setDraw(pdf, guideColor)
	pdf.SetLineWidth(0.3)
	pdf.SetDashPattern([]float64{4, 3}, 0)
	pdf.Line(col.x, top+capacity, col.x+col.width, top+capacity)
	pdf.SetDashPattern([]float64{}, 0)
}

// flags renders the edit affordances of a unit as a short suffix
func flags(u pagination.AnnotatedUnit) string {
	s := ""
	if u.CanMoveUp {
		s += " ^"
	}
	if u.CanMoveDown {
		s += " v"
	}
	if u.CanDelete {
		s += " x"
	}
	return s
}

func setFill(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetFillColor(c[0], c[1], c[2])
}

func setDraw(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetDrawColor(c[0], c[1], c[2])
}
