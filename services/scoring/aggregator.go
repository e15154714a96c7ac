package scoring

import (
	"math"

	"oneq/models"
)

// OneQ factor weights.
const (
	weightPrice    = 0.40
	weightDeadline = 0.30
	weightWorkFit  = 0.30
)

// AggregateScore combines the three factor scores into the final OneQ score,
// rounded to the nearest integer in [0,100].
func AggregateScore(price, deadline, workfit models.FactorScore) int {
	raw := weightPrice*price.Value + weightDeadline*deadline.Value + weightWorkFit*workfit.Value
	return int(math.Round(clamp(raw)))
}

// reasonTemplates is keyed by dominant factor and strength tier. The reason
// string is rule-based so recommendations stay reproducible without any
// external service.
var reasonTemplates = map[models.Factor][3]string{
	models.FactorPrice: {
		"very competitive pricing for this run",
		"well priced for this run",
		"the best price balance available",
	},
	models.FactorDeadline: {
		"comfortably meets your deadline",
		"a solid turnaround for your deadline",
		"the strongest turnaround available",
	},
	models.FactorWorkFit: {
		"a specialist in this kind of work",
		"well equipped for this kind of work",
		"the best match for this job",
	},
}

// balancedTemplates covers the case where no factor dominates.
var balancedTemplates = [3]string{
	"strong across price, turnaround and fit",
	"a good balance of price, turnaround and fit",
	"the most balanced option for this request",
}

// Reason renders the deterministic recommendation reason. A factor is
// dominant when it exceeds both others by the configured margin.
func Reason(cfg Config, price, deadline, workfit models.FactorScore) string {
	dominant, value := dominantFactor(cfg, price, deadline, workfit)

	tier := 2
	switch {
	case value >= 80:
		tier = 0
	case value >= 60:
		tier = 1
	}

	if dominant == "" {
		return "Recommended: " + balancedTemplates[tier]
	}
	return "Recommended: " + reasonTemplates[dominant][tier]
}

// dominantFactor returns the factor that beats both others by the margin,
// or "" when the scores are too close to call.
func dominantFactor(cfg Config, price, deadline, workfit models.FactorScore) (models.Factor, float64) {
	m := cfg.DominanceMargin
	switch {
	case price.Value >= deadline.Value+m && price.Value >= workfit.Value+m:
		return models.FactorPrice, price.Value
	case deadline.Value >= price.Value+m && deadline.Value >= workfit.Value+m:
		return models.FactorDeadline, deadline.Value
	case workfit.Value >= price.Value+m && workfit.Value >= deadline.Value+m:
		return models.FactorWorkFit, workfit.Value
	}
	top := math.Max(price.Value, math.Max(deadline.Value, workfit.Value))
	return "", top
}
