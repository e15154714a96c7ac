package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catPtr(c Category) *Category { return &c }

func numPtr(n int) *int { return &n }

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), "category %s", c)
	}
	assert.False(t, Category("origami").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestMissingFields(t *testing.T) {
	t.Run("no category reports only the category", func(t *testing.T) {
		var p PartialPrintRequest
		assert.Equal(t, []string{"category"}, p.MissingFields())
	})

	t.Run("category set reports the rest in collection order", func(t *testing.T) {
		p := PartialPrintRequest{Category: catPtr(CategoryBusinessCard)}
		assert.Equal(t, []string{"quantity", "due_days", "paper", "printing", "finishing"}, p.MissingFields())
	})

	t.Run("options shrink the list one by one", func(t *testing.T) {
		p := PartialPrintRequest{
			Category: catPtr(CategoryBusinessCard),
			Quantity: numPtr(100),
			DueDays:  numPtr(5),
			Options:  map[string]string{"paper": "matte"},
		}
		assert.Equal(t, []string{"printing", "finishing"}, p.MissingFields())
	})

	t.Run("budget and region never appear", func(t *testing.T) {
		p := PartialPrintRequest{
			Category: catPtr(CategorySticker),
			Quantity: numPtr(100),
			DueDays:  numPtr(5),
			Options:  map[string]string{"type": "vinyl", "size": "5cm"},
		}
		assert.Empty(t, p.MissingFields())
		assert.True(t, p.Complete())
	})
}

func TestToPrintRequest(t *testing.T) {
	p := PartialPrintRequest{
		Category: catPtr(CategoryPoster),
		Quantity: numPtr(50),
		DueDays:  numPtr(10),
		Budget:   &BudgetRange{Max: 200000},
		Options:  map[string]string{"paper": "glossy", "coating": "uv"},
	}
	require.True(t, p.Complete())

	req := p.ToPrintRequest()
	assert.Equal(t, CategoryPoster, req.Category)
	assert.Equal(t, 50, req.Quantity)
	assert.Equal(t, 10, *req.DueDays)
	assert.Equal(t, 200000, req.Budget.Max)
	assert.Equal(t, "glossy", req.Options["paper"])

	// The materialized options are a copy, not the accumulator's map.
	req.Options["paper"] = "matte"
	assert.Equal(t, "glossy", p.Options["paper"])
}
