package scoring

import (
	"oneq/models"
)

// Deadline sub-factor weights.
const (
	weightFeasibility = 0.60
	weightCapacity    = 0.40
)

// DeadlineScore computes how well the vendor can meet the requested
// deadline given its turnaround estimate and production capacity.
func DeadlineScore(cfg Config, req models.PrintRequest, vendor *models.VendorRecord) models.FactorScore {
	feasibility := neutralSubScore
	capacity := neutralSubScore

	turnaround, hasCapacity := vendor.EstimatedTurnaroundDays(req.Category, req.Quantity)
	if hasCapacity {
		feasibility = feasibilityScore(cfg, req, turnaround)
		capacity = capacityScore(cfg, req, vendor)
	}

	value := clamp(weightFeasibility*feasibility + weightCapacity*capacity)
	return models.FactorScore{
		Factor: models.FactorDeadline,
		Value:  value,
		Breakdown: map[string]float64{
			"deadline_feasibility": weightFeasibility * feasibility,
			"production_capacity":  weightCapacity * capacity,
		},
	}
}

// feasibilityScore is 100 when the turnaround fits within the requested
// deadline, decaying linearly to 0 as the shortfall grows past the grace
// window.
func feasibilityScore(cfg Config, req models.PrintRequest, turnaroundDays int) float64 {
	if req.DueDays == nil {
		return neutralSubScore
	}
	shortfall := float64(turnaroundDays - *req.DueDays)
	if shortfall <= 0 {
		return 100
	}
	if cfg.DeadlineGraceDays <= 0 {
		return 0
	}
	return clamp(100 * (1 - shortfall/cfg.DeadlineGraceDays))
}

// capacityScore normalizes the vendor's weekly throughput against the
// request quantity and saturates at 100 once capacity comfortably exceeds
// demand.
func capacityScore(cfg Config, req models.PrintRequest, vendor *models.VendorRecord) float64 {
	entry, ok := vendor.Capacity[req.Category]
	if !ok || entry.DailyThroughput <= 0 || req.Quantity <= 0 {
		return 0
	}
	weekly := float64(entry.DailyThroughput) * 7
	demand := float64(req.Quantity) * cfg.CapacityComfortRatio
	if demand <= 0 {
		return 100
	}
	return clamp(100 * weekly / demand)
}
