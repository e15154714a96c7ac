package chat

import (
	"testing"

	"oneq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeExtractedLastNonNullWins(t *testing.T) {
	var acc models.PartialPrintRequest

	conflict := mergeExtracted(&acc, models.PartialPrintRequest{
		Category: categoryPtr(models.CategoryBrochure),
		Quantity: intPtr(100),
	})
	assert.False(t, conflict)

	conflict = mergeExtracted(&acc, models.PartialPrintRequest{
		Quantity: intPtr(300),
		Budget:   &models.BudgetRange{Max: 500000},
	})
	assert.False(t, conflict)

	require.NotNil(t, acc.Quantity)
	assert.Equal(t, 300, *acc.Quantity)
	require.NotNil(t, acc.Budget)
	assert.Equal(t, 500000, acc.Budget.Max)
}

func TestMergeExtractedIgnoresInvalidValues(t *testing.T) {
	acc := models.PartialPrintRequest{Quantity: intPtr(100)}

	mergeExtracted(&acc, models.PartialPrintRequest{
		Category: categoryPtr(models.Category("origami")),
		Quantity: intPtr(-5),
		DueDays:  intPtr(0),
	})

	assert.Nil(t, acc.Category)
	assert.Equal(t, 100, *acc.Quantity)
	assert.Nil(t, acc.DueDays)
}

func TestMergeExtractedCategoryConflict(t *testing.T) {
	acc := models.PartialPrintRequest{Category: categoryPtr(models.CategoryPoster)}

	conflict := mergeExtracted(&acc, models.PartialPrintRequest{
		Category: categoryPtr(models.CategoryBanner),
	})

	assert.True(t, conflict)
	assert.Equal(t, models.CategoryPoster, *acc.Category)

	// Re-stating the same category is not a conflict.
	conflict = mergeExtracted(&acc, models.PartialPrintRequest{
		Category: categoryPtr(models.CategoryPoster),
	})
	assert.False(t, conflict)
}

func TestMergeExtractedFiltersOptionKeys(t *testing.T) {
	acc := models.PartialPrintRequest{Category: categoryPtr(models.CategorySticker)}

	mergeExtracted(&acc, models.PartialPrintRequest{
		Options: map[string]string{
			"type":      "vinyl",
			"size":      "5cm",
			"finishing": "gloss", // not a sticker option
			"blank":     "",
		},
	})

	assert.Equal(t, map[string]string{"type": "vinyl", "size": "5cm"}, acc.Options)
}
