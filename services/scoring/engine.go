package scoring

import (
	"sort"
	"sync"

	"oneq/models"
)

// RecommendationEngine ranks candidate vendors for a print request.
type RecommendationEngine interface {
	Recommend(req models.PrintRequest, candidates []models.VendorRecord, limit int) ([]models.RankedRecommendation, error)
}

// DefaultRecommendationEngine is a pure computation over the supplied
// inputs; it performs no catalog lookups of its own.
type DefaultRecommendationEngine struct {
	Cfg Config
}

// NewEngine builds an engine with the given tuning.
func NewEngine(cfg Config) *DefaultRecommendationEngine {
	return &DefaultRecommendationEngine{Cfg: cfg}
}

// Recommend scores every capable candidate and returns them sorted by OneQ
// score descending, ties broken by customer rating descending then vendor
// id ascending. A limit of 0 returns the full ranking.
func (e *DefaultRecommendationEngine) Recommend(req models.PrintRequest, candidates []models.VendorRecord, limit int) ([]models.RankedRecommendation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, newEmptyCandidateSetError("no candidate vendors supplied")
	}

	// Only vendors that quote the category are scorable.
	capable := make([]models.VendorRecord, 0, len(candidates))
	for _, v := range candidates {
		if v.SupportsCategory(req.Category) {
			capable = append(capable, v)
		}
	}
	if len(capable) == 0 {
		return nil, newEmptyCandidateSetError("no candidate vendor serves category " + string(req.Category))
	}

	minUnitPrice := lowestQuotedPrice(req, capable)

	// Factor scores for different vendors are independent; compute them
	// concurrently and merge into a positionally stable slice before the
	// deterministic single-threaded sort.
	type scored struct {
		vendor   *models.VendorRecord
		price    models.FactorScore
		deadline models.FactorScore
		workfit  models.FactorScore
	}
	results := make([]scored, len(capable))

	var wg sync.WaitGroup
	for i := range capable {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vendor := &capable[i]
			results[i] = scored{
				vendor:   vendor,
				price:    PriceScore(e.Cfg, req, vendor, minUnitPrice),
				deadline: DeadlineScore(e.Cfg, req, vendor),
				workfit:  WorkFitScore(e.Cfg, req, vendor),
			}
		}(i)
	}
	wg.Wait()

	ranked := make([]models.RankedRecommendation, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, models.RankedRecommendation{
			VendorID:   r.vendor.ID,
			VendorName: r.vendor.Name,
			Contact:    r.vendor.Contact,
			OneQScore:  AggregateScore(r.price, r.deadline, r.workfit),
			Price:      r.price,
			Deadline:   r.deadline,
			WorkFit:    r.workfit,
			Reason:     Reason(e.Cfg, r.price, r.deadline, r.workfit),
		})
	}

	ratings := make(map[string]float64, len(capable))
	for i := range capable {
		ratings[capable[i].ID] = capable[i].Rating
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OneQScore != ranked[j].OneQScore {
			return ranked[i].OneQScore > ranked[j].OneQScore
		}
		if ratings[ranked[i].VendorID] != ratings[ranked[j].VendorID] {
			return ratings[ranked[i].VendorID] > ratings[ranked[j].VendorID]
		}
		return ranked[i].VendorID < ranked[j].VendorID
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// lowestQuotedPrice finds the minimum quoted unit price across the capable
// candidate set; the cheapest vendor anchors the price-ratio sub-factor.
func lowestQuotedPrice(req models.PrintRequest, capable []models.VendorRecord) float64 {
	min := 0.0
	first := true
	for i := range capable {
		price, ok := capable[i].QuotedUnitPrice(req)
		if !ok {
			continue
		}
		if first || price < min {
			min = price
			first = false
		}
	}
	return min
}

// validateRequest rejects malformed scoring input with field-level detail.
func validateRequest(req models.PrintRequest) error {
	fields := map[string]string{}
	if !req.Category.IsValid() {
		fields["category"] = "unknown category"
	}
	if req.Quantity <= 0 {
		fields["quantity"] = "quantity must be a positive integer"
	}
	if req.Category.IsValid() {
		for _, key := range models.CategoryOptionKeys[req.Category] {
			if _, ok := req.Options[key]; !ok {
				fields[key] = "required option for category " + string(req.Category)
			}
		}
	}
	if req.Budget != nil && req.Budget.Max < req.Budget.Min {
		fields["budget"] = "budget max must not be below min"
	}
	if req.DueDays != nil && *req.DueDays <= 0 {
		fields["due_days"] = "deadline must be at least one day out"
	}
	if len(fields) > 0 {
		return &InvalidRequestError{Fields: fields}
	}
	return nil
}
