package scoring

import "oneq/config"

// Config carries the tunable slopes and ceilings of the scoring formulas.
// The weights themselves are fixed by the OneQ score definition; only the
// normalization parameters are open to tuning.
type Config struct {
	// BudgetOverageCeiling is the fraction of the budget maximum by which a
	// quote may exceed the budget before its budget-fit score reaches 0.
	BudgetOverageCeiling float64
	// DeadlineGraceDays is the shortfall window over which deadline
	// feasibility decays from 100 to 0.
	DeadlineGraceDays float64
	// CapacityComfortRatio is the weekly-capacity-to-quantity multiple at
	// which production capacity saturates at 100.
	CapacityComfortRatio float64
	// MaxDiscountRate normalizes quantity discount tiers; a tier at this
	// rate scores 100.
	MaxDiscountRate float64
	// ExpertiseSaturation is the completed-job count at which category
	// expertise saturates.
	ExpertiseSaturation int
	// PointsPerCert is the quality-assurance score granted per
	// certification flag, capped at 100 overall.
	PointsPerCert float64
	// DominanceMargin is how far a factor must exceed both others before
	// the recommendation reason calls it dominant.
	DominanceMargin float64
}

// FromAppConfig builds a scoring Config from the loaded application config.
func FromAppConfig() Config {
	return Config{
		BudgetOverageCeiling: config.AppConfig.BudgetOverageCeiling,
		DeadlineGraceDays:    config.AppConfig.DeadlineGraceDays,
		CapacityComfortRatio: config.AppConfig.CapacityComfortRatio,
		MaxDiscountRate:      config.AppConfig.MaxDiscountRate,
		ExpertiseSaturation:  config.AppConfig.ExpertiseSaturation,
		PointsPerCert:        config.AppConfig.PointsPerCert,
		DominanceMargin:      config.AppConfig.DominanceMargin,
	}
}

// DefaultConfig returns the documented default tuning.
func DefaultConfig() Config {
	return Config{
		BudgetOverageCeiling: 0.35,
		DeadlineGraceDays:    2.0,
		CapacityComfortRatio: 2.0,
		MaxDiscountRate:      0.30,
		ExpertiseSaturation:  500,
		PointsPerCert:        25.0,
		DominanceMargin:      10.0,
	}
}

// clamp bounds v to [0,100]. Every score leaving this package goes through
// it; out-of-range intermediates are clamped, never propagated as errors.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
