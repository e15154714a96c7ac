package models

// Factor names the three scoring dimensions.
type Factor string

const (
	FactorPrice    Factor = "price"
	FactorDeadline Factor = "deadline"
	FactorWorkFit  Factor = "workfit"
)

// FactorScore is one normalized scoring dimension with its weighted
// sub-factor contributions, kept for explainability.
type FactorScore struct {
	Factor    Factor             `json:"factor"`
	Value     float64            `json:"value"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// RankedRecommendation references a catalog vendor by id together with its
// aggregate score and the per-factor explanation. Vendor data beyond the
// display fields is never copied; the id is the authoritative reference.
type RankedRecommendation struct {
	VendorID   string        `json:"vendorId"`
	VendorName string        `json:"vendorName"`
	Contact    VendorContact `json:"contact"`
	OneQScore  int           `json:"oneqScore"`
	Price      FactorScore   `json:"price"`
	Deadline   FactorScore   `json:"deadline"`
	WorkFit    FactorScore   `json:"workfit"`
	Reason     string        `json:"reason"`
}
