package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	vendorRepo "oneq/database/repository/vendor"
	"oneq/models"
	"oneq/services/chat"
	"oneq/services/scoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMatcher struct {
	recs []models.RankedRecommendation
	err  error
}

func (m *fakeMatcher) RecommendForVendors(models.PrintRequest, []string, int) ([]models.RankedRecommendation, error) {
	return m.recs, m.err
}

func (m *fakeMatcher) RecommendForCategory(models.PrintRequest, int) ([]models.RankedRecommendation, error) {
	return m.recs, m.err
}

type fakeOrchestrator struct {
	session *models.QuoteSession
	resp    *models.ChatResponse
	err     error
}

func (o *fakeOrchestrator) StartSession(context.Context, *models.Category) (*models.QuoteSession, error) {
	return o.session, o.err
}

func (o *fakeOrchestrator) HandleTurn(context.Context, string, string) (*models.ChatResponse, error) {
	return o.resp, o.err
}

func (o *fakeOrchestrator) Abandon(context.Context, string) error {
	return o.err
}

func (o *fakeOrchestrator) AbandonIdle(context.Context, time.Duration) (int, error) {
	return 0, o.err
}

type fakeVendorRepo struct {
	vendors map[string]models.VendorRecord
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: map[string]models.VendorRecord{}}
}

func (r *fakeVendorRepo) GetByID(id string) (*models.VendorRecord, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, vendorRepo.ErrNotFound{ID: id}
	}
	return &v, nil
}

func (r *fakeVendorRepo) GetByIDs(ids []string) ([]models.VendorRecord, error) {
	var out []models.VendorRecord
	for _, id := range ids {
		if v, ok := r.vendors[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVendorRepo) GetByCategory(category models.Category) ([]models.VendorRecord, error) {
	var out []models.VendorRecord
	for _, v := range r.vendors {
		if v.SupportsCategory(category) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVendorRepo) GetAll() ([]models.VendorRecord, error) {
	var out []models.VendorRecord
	for _, v := range r.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVendorRepo) Create(vendor *models.VendorRecord) error {
	r.vendors[vendor.ID] = *vendor
	return nil
}

func (r *fakeVendorRepo) Update(vendor *models.VendorRecord) error {
	if _, ok := r.vendors[vendor.ID]; !ok {
		return vendorRepo.ErrNotFound{ID: vendor.ID}
	}
	r.vendors[vendor.ID] = *vendor
	return nil
}

func (r *fakeVendorRepo) Delete(id string) error {
	if _, ok := r.vendors[id]; !ok {
		return vendorRepo.ErrNotFound{ID: id}
	}
	delete(r.vendors, id)
	return nil
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func scoreRouter(matcher *fakeMatcher) *gin.Engine {
	router := gin.New()
	h := NewScoreHandler(matcher, zap.NewNop())
	router.POST("/api/oneq-score/calculate", h.CalculateHandler)
	return router
}

func validScorePayload() models.ScoreRequest {
	due := 5
	return models.ScoreRequest{
		Request: models.PrintRequest{
			Category: models.CategoryBusinessCard,
			Quantity: 500,
			DueDays:  &due,
			Options: map[string]string{
				"paper": "matte", "printing": "double-sided", "finishing": "none",
			},
		},
		VendorIDs: []string{"v1", "v2"},
	}
}

func TestCalculateHandler(t *testing.T) {
	t.Run("returns the ranking", func(t *testing.T) {
		matcher := &fakeMatcher{recs: []models.RankedRecommendation{
			{VendorID: "v1", OneQScore: 82},
			{VendorID: "v2", OneQScore: 64},
		}}
		w := doRequest(scoreRouter(matcher), http.MethodPost, "/api/oneq-score/calculate", validScorePayload())
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Results []models.RankedRecommendation `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Results, 2)
		assert.Equal(t, "v1", body.Results[0].VendorID)
	})

	t.Run("invalid request maps to 400 with field detail", func(t *testing.T) {
		matcher := &fakeMatcher{err: &scoring.InvalidRequestError{
			Fields: map[string]string{"quantity": "quantity must be a positive integer"},
		}}
		w := doRequest(scoreRouter(matcher), http.MethodPost, "/api/oneq-score/calculate", validScorePayload())
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "quantity")
	})

	t.Run("empty candidate set maps to 404", func(t *testing.T) {
		matcher := &fakeMatcher{err: &scoring.EmptyCandidateSetError{Message: "no vendors"}}
		w := doRequest(scoreRouter(matcher), http.MethodPost, "/api/oneq-score/calculate", validScorePayload())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		router := scoreRouter(&fakeMatcher{})
		req := httptest.NewRequest(http.MethodPost, "/api/oneq-score/calculate", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func chatRouter(o chat.SessionOrchestrator) *gin.Engine {
	router := gin.New()
	h := NewChatHandler(o, zap.NewNop())
	router.POST("/api/chat/session", h.StartSessionHandler)
	router.POST("/api/chat/message", h.MessageHandler)
	router.DELETE("/api/chat/session/:sessionID", h.AbandonSessionHandler)
	return router
}

func TestChatHandlers(t *testing.T) {
	t.Run("start session returns 201", func(t *testing.T) {
		o := &fakeOrchestrator{session: &models.QuoteSession{
			ID:     "s1",
			Status: models.SessionCollecting,
		}}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/session", gin.H{"category": "poster"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "s1")
	})

	t.Run("unknown category rejected at session start", func(t *testing.T) {
		o := &fakeOrchestrator{}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/session", gin.H{"category": "origami"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("message returns the turn response", func(t *testing.T) {
		o := &fakeOrchestrator{resp: &models.ChatResponse{
			SessionID: "s1",
			Status:    models.SessionCollecting,
			Missing:   []string{"quantity"},
			NextField: "quantity",
		}}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/message",
			models.ChatRequest{SessionID: "s1", Message: "business cards please"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "quantity")
	})

	t.Run("unknown session maps to 404", func(t *testing.T) {
		o := &fakeOrchestrator{err: &chat.SessionNotFoundError{SessionID: "nope"}}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/message",
			models.ChatRequest{SessionID: "nope", Message: "hello"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("closed session maps to 409", func(t *testing.T) {
		o := &fakeOrchestrator{err: &chat.SessionClosedError{SessionID: "s1", Status: "completed"}}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/message",
			models.ChatRequest{SessionID: "s1", Message: "one more"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("degraded turn maps to 503", func(t *testing.T) {
		o := &fakeOrchestrator{resp: &models.ChatResponse{
			SessionID: "s1",
			Status:    models.SessionCollecting,
			Degraded:  true,
		}}
		w := doRequest(chatRouter(o), http.MethodPost, "/api/chat/message",
			models.ChatRequest{SessionID: "s1", Message: "hello"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("abandon returns 200", func(t *testing.T) {
		o := &fakeOrchestrator{}
		w := doRequest(chatRouter(o), http.MethodDelete, "/api/chat/session/s1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "abandoned")
	})
}

func vendorRouter(repo vendorRepo.VendorRepository) *gin.Engine {
	router := gin.New()
	h := NewVendorHandler(repo, zap.NewNop())
	router.POST("/api/vendors", h.RegisterVendorHandler)
	router.GET("/api/vendors", h.ListVendorsHandler)
	router.GET("/api/vendors/:vendorID", h.GetVendorHandler)
	router.PUT("/api/vendors/:vendorID", h.UpdateVendorHandler)
	router.DELETE("/api/vendors/:vendorID", h.DeleteVendorHandler)
	return router
}

func validVendorPayload() models.VendorRecord {
	return models.VendorRecord{
		Name: "Quick Print",
		PriceTable: map[models.Category]models.PriceEntry{
			models.CategoryBusinessCard: {UnitPrice: 100},
		},
		Capacity: map[models.Category]models.CapacityEntry{
			models.CategoryBusinessCard: {DailyThroughput: 500, BaseTurnaroundDays: 2},
		},
		OnTimeRate: 0.95,
		Rating:     4.2,
	}
}

func TestVendorHandlers(t *testing.T) {
	t.Run("create assigns an id", func(t *testing.T) {
		repo := newFakeVendorRepo()
		w := doRequest(vendorRouter(repo), http.MethodPost, "/api/vendors", validVendorPayload())
		require.Equal(t, http.StatusCreated, w.Code)

		var created models.VendorRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.Len(t, repo.vendors, 1)
	})

	t.Run("create rejects an out-of-range rating", func(t *testing.T) {
		repo := newFakeVendorRepo()
		payload := validVendorPayload()
		payload.Rating = 7
		w := doRequest(vendorRouter(repo), http.MethodPost, "/api/vendors", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.vendors)
	})

	t.Run("get unknown vendor maps to 404", func(t *testing.T) {
		w := doRequest(vendorRouter(newFakeVendorRepo()), http.MethodGet, "/api/vendors/ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list filters by category", func(t *testing.T) {
		repo := newFakeVendorRepo()
		card := validVendorPayload()
		card.ID = "card-shop"
		require.NoError(t, repo.Create(&card))
		poster := validVendorPayload()
		poster.ID = "poster-shop"
		poster.PriceTable = map[models.Category]models.PriceEntry{
			models.CategoryPoster: {UnitPrice: 2000},
		}
		require.NoError(t, repo.Create(&poster))

		w := doRequest(vendorRouter(repo), http.MethodGet, "/api/vendors?category=poster", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "poster-shop")
		assert.NotContains(t, w.Body.String(), "card-shop")
	})

	t.Run("list rejects an unknown category", func(t *testing.T) {
		w := doRequest(vendorRouter(newFakeVendorRepo()), http.MethodGet, "/api/vendors?category=origami", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete unknown vendor maps to 404", func(t *testing.T) {
		w := doRequest(vendorRouter(newFakeVendorRepo()), http.MethodDelete, "/api/vendors/ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
