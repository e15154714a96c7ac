package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vendorRepo "oneq/database/repository/vendor"
	"oneq/models"

	"github.com/go-redis/redis/v8"
)

// MatcherService resolves candidates from the catalog and runs the engine,
// with a short-lived cache of ranked results.
type MatcherService interface {
	// RecommendForVendors scores an explicit candidate id set.
	RecommendForVendors(req models.PrintRequest, vendorIDs []string, limit int) ([]models.RankedRecommendation, error)
	// RecommendForCategory scores every catalog vendor serving the category.
	RecommendForCategory(req models.PrintRequest, limit int) ([]models.RankedRecommendation, error)
}

// DefaultMatcherService is the catalog-backed implementation.
type DefaultMatcherService struct {
	VendorRepo  vendorRepo.VendorRepository
	CacheClient *redis.Client
	Engine      RecommendationEngine
}

const matchCacheTTL = 5 * time.Minute

// RecommendForVendors resolves the supplied ids against the catalog and
// ranks them. Unknown ids are dropped; an entirely unknown set surfaces as
// an empty candidate set.
func (s *DefaultMatcherService) RecommendForVendors(req models.PrintRequest, vendorIDs []string, limit int) ([]models.RankedRecommendation, error) {
	if len(vendorIDs) == 0 {
		return nil, newEmptyCandidateSetError("no candidate vendors supplied")
	}
	candidates, err := s.VendorRepo.GetByIDs(vendorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve candidate vendors: %w", err)
	}
	return s.rankCached(req, candidates, limit)
}

// RecommendForCategory takes the current catalog snapshot for the request's
// category as the candidate set.
func (s *DefaultMatcherService) RecommendForCategory(req models.PrintRequest, limit int) ([]models.RankedRecommendation, error) {
	candidates, err := s.VendorRepo.GetByCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendors for category %s: %w", req.Category, err)
	}
	return s.rankCached(req, candidates, limit)
}

// rankCached runs the engine behind a redis cache keyed by the request and
// the candidate ids with their update stamps. Scoring is deterministic and
// a catalog update changes the key, so a cache hit is exact.
func (s *DefaultMatcherService) rankCached(req models.PrintRequest, candidates []models.VendorRecord, limit int) ([]models.RankedRecommendation, error) {
	ctx := context.Background()

	key, ok := s.cacheKey(req, candidates, limit)
	if ok {
		if cached, err := s.CacheClient.Get(ctx, key).Result(); err == nil && cached != "" {
			var ranked []models.RankedRecommendation
			if err := json.Unmarshal([]byte(cached), &ranked); err == nil {
				return ranked, nil
			}
			// Unparsable cache entry falls through to re-computation.
		}
	}

	ranked, err := s.Engine.Recommend(req, candidates, limit)
	if err != nil {
		return nil, err
	}

	if ok {
		if data, err := json.Marshal(ranked); err == nil {
			s.CacheClient.Set(ctx, key, data, matchCacheTTL)
		}
	}
	return ranked, nil
}

func (s *DefaultMatcherService) cacheKey(req models.PrintRequest, candidates []models.VendorRecord, limit int) (string, bool) {
	if s.CacheClient == nil {
		return "", false
	}
	type keyInput struct {
		Request models.PrintRequest `json:"request"`
		IDs     []string            `json:"ids"`
		Limit   int                 `json:"limit"`
	}
	// The update stamp keeps stale rankings from outliving a catalog edit.
	ids := make([]string, 0, len(candidates))
	for i := range candidates {
		ids = append(ids, fmt.Sprintf("%s@%d", candidates[i].ID, candidates[i].UpdatedAt.Unix()))
	}
	raw, err := json.Marshal(keyInput{Request: req, IDs: ids, Limit: limit})
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("oneq:match:%x", raw), true
}
