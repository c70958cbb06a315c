package pagination

import (
	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/types"
)

// PageMetrics reports how full each column of a page is.
// Single-column pages report their content capacity as the primary capacity.
type PageMetrics struct {
	PrimaryHeight     float64 `json:"primary_height"`
	PrimaryCapacity   float64 `json:"primary_capacity"`
	SecondaryHeight   float64 `json:"secondary_height"`
	SecondaryCapacity float64 `json:"secondary_capacity"`
	Overflow          bool    `json:"overflow"`
}

// Result is the output of one pagination run
type Result struct {
	RunID     uuid.UUID       `json:"run_id"`
	Topology  Topology        `json:"topology"`
	Pages     []AnnotatedPage `json:"pages"`
	UnitCount int             `json:"unit_count"`
}

// PageCount returns the number of pages in the result
func (r *Result) PageCount() int {
	return len(r.Pages)
}

// Engine runs extraction, packing and annotation as one synchronous pass.
// An Engine holds no per-run state and is safe for concurrent use.
type Engine struct {
	topology  Topology
	budget    LayoutBudget
	estimator HeightEstimator
	packer    PagePacker
}

// Option configures an Engine
type Option func(*Engine)

// WithEstimator replaces the heuristic height estimator
func WithEstimator(estimator HeightEstimator) Option {
	return func(e *Engine) {
		if estimator != nil {
			e.estimator = estimator
		}
	}
}

// WithPacker replaces the topology's default packing strategy
func WithPacker(packer PagePacker) Option {
	return func(e *Engine) {
		if packer != nil {
			e.packer = packer
		}
	}
}

// NewEngine creates an Engine for the given topology and budget
func NewEngine(topology Topology, budget LayoutBudget, opts ...Option) (*Engine, error) {
	if _, err := ParseTopology(string(topology)); err != nil {
		return nil, &BudgetError{Message: "invalid topology", Cause: err}
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		topology:  topology,
		budget:    budget,
		estimator: HeuristicEstimator{},
		packer:    NewPacker(topology),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Topology returns the engine's layout topology
func (e *Engine) Topology() Topology {
	return e.topology
}

// Budget returns the engine's layout budget
func (e *Engine) Budget() LayoutBudget {
	return e.budget
}

// Paginate recomputes the full page layout of doc from scratch.
// A nil or empty document yields exactly one empty page.
func (e *Engine) Paginate(doc *types.Document) (*Result, error) {
	units, err := NewExtractor(e.estimator, e.budget).Extract(doc, e.topology)
	if err != nil {
		return nil, err
	}

	pages := e.packer.Distribute(units, e.budget)
	annotated := Annotate(pages)
	for i := range annotated {
		annotated[i].Metrics = e.measure(&pages[i])
	}

	return &Result{
		RunID:     uuid.New(),
		Topology:  e.topology,
		Pages:     annotated,
		UnitCount: units.Len(),
	}, nil
}

func (e *Engine) measure(p *Page) PageMetrics {
	var m PageMetrics
	if e.topology == TopologySingleColumn {
		for _, u := range p.Primary {
			m.PrimaryHeight += u.EstimatedHeight + e.budget.SectionSpacing
		}
		m.PrimaryCapacity = e.budget.ContentCapacity(p.Index)
		m.Overflow = m.PrimaryHeight > m.PrimaryCapacity
		return m
	}

	for _, u := range p.Primary {
		m.PrimaryHeight += u.EstimatedHeight
	}
	for _, u := range p.Secondary {
		m.SecondaryHeight += u.EstimatedHeight
	}
	m.PrimaryCapacity = e.budget.PrimaryColumnCapacity
	m.SecondaryCapacity = e.budget.SecondaryColumnCapacity
	m.Overflow = m.PrimaryHeight > m.PrimaryCapacity || m.SecondaryHeight > m.SecondaryCapacity
	return m
}
