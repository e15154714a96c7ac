package scoring

import (
	"math"

	"oneq/models"
)

// WorkFit sub-factor weights.
const (
	weightExpertise    = 0.40
	weightQuality      = 0.30
	weightSatisfaction = 0.30
)

// WorkFitScore measures how suited the vendor is to the requested category:
// historical specialization, quality certifications and customer rating.
func WorkFitScore(cfg Config, req models.PrintRequest, vendor *models.VendorRecord) models.FactorScore {
	expertise := expertiseScore(cfg, vendor.CompletedJobs[req.Category])
	quality := clamp(cfg.PointsPerCert * float64(len(vendor.Certifications)))
	satisfaction := clamp(vendor.Rating / 5 * 100)

	value := clamp(weightExpertise*expertise + weightQuality*quality + weightSatisfaction*satisfaction)
	return models.FactorScore{
		Factor: models.FactorWorkFit,
		Value:  value,
		Breakdown: map[string]float64{
			"category_expertise":    weightExpertise * expertise,
			"quality_assurance":     weightQuality * quality,
			"customer_satisfaction": weightSatisfaction * satisfaction,
		},
	}
}

// expertiseScore grows monotonically with the vendor's completed job count
// in the category and saturates at the configured volume. The log curve
// rewards early volume strongly and flattens out, so an established shop is
// not unbeatable on raw count alone.
func expertiseScore(cfg Config, completedJobs int) float64 {
	if completedJobs <= 0 {
		return 0
	}
	saturation := cfg.ExpertiseSaturation
	if saturation <= 0 {
		saturation = 1
	}
	score := 100 * math.Log1p(float64(completedJobs)) / math.Log1p(float64(saturation))
	return clamp(score)
}
