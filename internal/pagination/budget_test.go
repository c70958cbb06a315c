package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBudget(t *testing.T) {
	b := DefaultBudget()
	assert.NoError(t, b.Validate())
	assert.InDelta(t, 856, b.ContentCapacity(0), 1e-9)
	assert.InDelta(t, 916, b.ContentCapacity(1), 1e-9)
	assert.InDelta(t, 916, b.ContentCapacity(7), 1e-9)
	assert.InDelta(t, 140, b.HeaderReserve(0), 1e-9)
	assert.InDelta(t, 80, b.HeaderReserve(3), 1e-9)
	assert.Equal(t, b.Secondary, b.Metrics(PlacementSecondary))
	assert.Equal(t, b.Primary, b.Metrics(PlacementPrimary))
	assert.InDelta(t, 1050, b.Capacity(PlacementSecondary), 1e-9)
	assert.InDelta(t, 950, b.Capacity(PlacementPrimary), 1e-9)
}

func TestLayoutBudget_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LayoutBudget)
	}{
		{"zero page height", func(b *LayoutBudget) { b.PageHeight = 0 }},
		{"negative capacity", func(b *LayoutBudget) { b.PrimaryColumnCapacity = -1 }},
		{"negative padding", func(b *LayoutBudget) { b.PagePadding = -1 }},
		{"zero chars per line", func(b *LayoutBudget) { b.Secondary.CharsPerLine = 0 }},
		{"zero font size", func(b *LayoutBudget) { b.Primary.FontSize = 0 }},
		{"reserves exceed page", func(b *LayoutBudget) { b.FirstPageHeaderReserve = 2000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBudget()
			tt.mutate(&b)
			err := b.Validate()
			var budgetErr *BudgetError
			assert.ErrorAs(t, err, &budgetErr)
		})
	}
}
