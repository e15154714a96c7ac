package intelligence

import (
	"testing"

	"oneq/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalCategory(t *testing.T) {
	cases := []struct {
		in   string
		want models.Category
		ok   bool
	}{
		{"business-card", models.CategoryBusinessCard, true},
		{"Business Card", models.CategoryBusinessCard, true},
		{"명함", models.CategoryBusinessCard, true},
		{"포스터", models.CategoryPoster, true},
		{"현수막", models.CategoryLargeBanner, true},
		{"placard", models.CategoryLargeBanner, true},
		{" sticker ", models.CategorySticker, true},
		{"origami", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalCategory(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseQuantity(t *testing.T) {
	require.NotNil(t, ParseQuantity("100"))
	assert.Equal(t, 100, *ParseQuantity("100"))
	assert.Equal(t, 500, *ParseQuantity("500 copies"))
	assert.Equal(t, 300, *ParseQuantity("300부"))
	assert.Nil(t, ParseQuantity("a few"))
	assert.Nil(t, ParseQuantity("0"))
}

func TestParseDueDays(t *testing.T) {
	assert.Equal(t, 7, *ParseDueDays("7 days"))
	assert.Equal(t, 3, *ParseDueDays("3일"))
	assert.Nil(t, ParseDueDays("soon"))
}

func TestParseBudget(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		b := ParseBudget("50000-100000")
		require.NotNil(t, b)
		assert.Equal(t, 50000, b.Min)
		assert.Equal(t, 100000, b.Max)
	})

	t.Run("korean range with multiplier", func(t *testing.T) {
		b := ParseBudget("5만원~10만원")
		require.NotNil(t, b)
		assert.Equal(t, 50000, b.Min)
		assert.Equal(t, 100000, b.Max)
	})

	t.Run("single amount becomes an upper bound", func(t *testing.T) {
		b := ParseBudget("80000")
		require.NotNil(t, b)
		assert.Equal(t, 0, b.Min)
		assert.Equal(t, 80000, b.Max)
	})

	t.Run("thousand multiplier", func(t *testing.T) {
		b := ParseBudget("5천원")
		require.NotNil(t, b)
		assert.Equal(t, 5000, b.Max)
	})

	t.Run("comma separated digits", func(t *testing.T) {
		b := ParseBudget("1,000,000")
		require.NotNil(t, b)
		assert.Equal(t, 1000000, b.Max)
	})

	t.Run("no number", func(t *testing.T) {
		assert.Nil(t, ParseBudget("cheap please"))
		assert.Nil(t, ParseBudget(""))
	})
}

func TestParseExtraction(t *testing.T) {
	t.Run("typical payload", func(t *testing.T) {
		out, err := parseExtraction(`{
			"category": "business card",
			"quantity": "500",
			"due_days": 7,
			"budget": "5만원~10만원",
			"region": "Seoul",
			"options": {"paper": "matte", "printing": " double-sided "}
		}`)
		require.NoError(t, err)
		require.NotNil(t, out.Category)
		assert.Equal(t, models.CategoryBusinessCard, *out.Category)
		assert.Equal(t, 500, *out.Quantity)
		assert.Equal(t, 7, *out.DueDays)
		assert.Equal(t, &models.BudgetRange{Min: 50000, Max: 100000}, out.Budget)
		assert.Equal(t, "Seoul", out.Region)
		assert.Equal(t, map[string]string{"paper": "matte", "printing": "double-sided"}, out.Options)
	})

	t.Run("code fenced payload", func(t *testing.T) {
		out, err := parseExtraction("```json\n{\"category\": \"poster\"}\n```")
		require.NoError(t, err)
		require.NotNil(t, out.Category)
		assert.Equal(t, models.CategoryPoster, *out.Category)
	})

	t.Run("empty object yields nothing", func(t *testing.T) {
		out, err := parseExtraction(`{}`)
		require.NoError(t, err)
		assert.Nil(t, out.Category)
		assert.Nil(t, out.Quantity)
		assert.Nil(t, out.Budget)
	})

	t.Run("unknown category is dropped", func(t *testing.T) {
		out, err := parseExtraction(`{"category": "origami", "quantity": 10}`)
		require.NoError(t, err)
		assert.Nil(t, out.Category)
		assert.Equal(t, 10, *out.Quantity)
	})

	t.Run("non-json payload errors", func(t *testing.T) {
		_, err := parseExtraction("I could not find any order details.")
		assert.Error(t, err)
	})
}
