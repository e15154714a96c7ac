package intelligence

import (
	"regexp"
	"strconv"
	"strings"

	"oneq/models"
)

var digitsRe = regexp.MustCompile(`\d+`)

// categoryAliases maps the phrasings the extractor tends to produce onto
// canonical categories.
var categoryAliases = map[string]models.Category{
	"business-card": models.CategoryBusinessCard,
	"business card": models.CategoryBusinessCard,
	"namecard":      models.CategoryBusinessCard,
	"명함":            models.CategoryBusinessCard,
	"poster":        models.CategoryPoster,
	"포스터":           models.CategoryPoster,
	"banner":        models.CategoryBanner,
	"배너":            models.CategoryBanner,
	"large-banner":  models.CategoryLargeBanner,
	"large banner":  models.CategoryLargeBanner,
	"placard":       models.CategoryLargeBanner,
	"현수막":           models.CategoryLargeBanner,
	"brochure":      models.CategoryBrochure,
	"브로슈어":          models.CategoryBrochure,
	"sticker":       models.CategorySticker,
	"스티커":           models.CategorySticker,
}

// CanonicalCategory resolves a free-form category mention to one of the
// supported categories.
func CanonicalCategory(s string) (models.Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}
	if cat, ok := categoryAliases[key]; ok {
		return cat, true
	}
	if cat := models.Category(key); cat.IsValid() {
		return cat, true
	}
	return "", false
}

// ParseQuantity pulls a positive copy count out of strings like "100",
// "100 copies" or "100부". Returns nil when no number is present.
func ParseQuantity(s string) *int {
	n, ok := firstNumber(s)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

// ParseDueDays pulls a day count out of strings like "7", "7 days" or
// "7일".
func ParseDueDays(s string) *int {
	n, ok := firstNumber(s)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

// ParseBudget interprets a budget amount or range. A single amount is
// treated as an upper bound. "10만원" style amounts scale by 10,000 the way
// Korean print quotes are written.
func ParseBudget(s string) *models.BudgetRange {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sep := ""
	for _, candidate := range []string{"~", "-", "to"} {
		if strings.Contains(s, candidate) {
			sep = candidate
			break
		}
	}
	if sep != "" {
		parts := strings.SplitN(s, sep, 2)
		min, okMin := parseAmount(parts[0])
		max, okMax := parseAmount(parts[1])
		if okMin && okMax && max >= min {
			return &models.BudgetRange{Min: min, Max: max}
		}
		if okMax {
			return &models.BudgetRange{Max: max}
		}
		return nil
	}
	if amount, ok := parseAmount(s); ok {
		return &models.BudgetRange{Max: amount}
	}
	return nil
}

// parseAmount reads a monetary amount, applying the 만원 (x10,000) and 천원
// (x1,000) multipliers when present.
func parseAmount(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, ok := firstNumber(s)
	if !ok || n < 0 {
		return 0, false
	}
	switch {
	case strings.Contains(s, "만"):
		n *= 10000
	case strings.Contains(s, "천"):
		n *= 1000
	}
	return n, true
}

func firstNumber(s string) (int, bool) {
	match := digitsRe.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
