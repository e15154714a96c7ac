package scoring

import (
	"oneq/models"
)

// Price sub-factor weights.
const (
	weightLowestPriceRatio = 0.50
	weightBudgetFit        = 0.25
	weightQuantityDiscount = 0.25
)

// neutralSubScore is used when an optional input (budget, deadline) is
// absent: the sub-factor neither rewards nor punishes the vendor.
const neutralSubScore = 50.0

// PriceScore computes the price fitness of one vendor for the request.
// minUnitPrice is the lowest quoted unit price across the candidate set for
// the same request; the cheapest vendor scores 100 on the ratio sub-factor
// with a linear falloff for everyone else.
func PriceScore(cfg Config, req models.PrintRequest, vendor *models.VendorRecord, minUnitPrice float64) models.FactorScore {
	unitPrice, _ := vendor.QuotedUnitPrice(req)

	ratio := 100.0
	if unitPrice > 0 {
		ratio = 100 * clamp01(minUnitPrice/unitPrice)
	}

	budgetFit := budgetFitScore(cfg, req, unitPrice)
	discount := 100 * clamp01(vendor.DiscountRateAt(req.Category, req.Quantity)/cfg.MaxDiscountRate)

	value := clamp(weightLowestPriceRatio*ratio + weightBudgetFit*budgetFit + weightQuantityDiscount*discount)
	return models.FactorScore{
		Factor: models.FactorPrice,
		Value:  value,
		Breakdown: map[string]float64{
			"lowest_price_ratio": weightLowestPriceRatio * ratio,
			"budget_fit":         weightBudgetFit * budgetFit,
			"quantity_discount":  weightQuantityDiscount * discount,
		},
	}
}

// budgetFitScore is 100 while the projected total stays within budget, then
// decays linearly to 0 as the total exceeds the budget maximum by up to the
// configured overage ceiling.
func budgetFitScore(cfg Config, req models.PrintRequest, unitPrice float64) float64 {
	if req.Budget == nil || req.Budget.Max <= 0 {
		return neutralSubScore
	}
	total := unitPrice * float64(req.Quantity)
	max := float64(req.Budget.Max)
	if total <= max {
		return 100
	}
	ceiling := cfg.BudgetOverageCeiling * max
	if ceiling <= 0 {
		return 0
	}
	return clamp(100 * (1 - (total-max)/ceiling))
}
