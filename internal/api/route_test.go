package api

import (
	"Pulse/internal/api/handler"
	"Pulse/internal/model"
	"Pulse/internal/service"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMetricsService struct {
	service.MetricsService
	metrics     []*model.PerformanceMetric
	saved       *model.PerformanceMetric
	savedPerf   *model.ContentPerformance
	lastStart   time.Time
	lastEnd     time.Time
	lastCreator uint64
	err         error
}

func (f *fakeMetricsService) GetAllMetrics(_ context.Context, creatorID uint64) ([]*model.PerformanceMetric, error) {
	f.lastCreator = creatorID
	return f.metrics, f.err
}

func (f *fakeMetricsService) GetMetricsTimeline(_ context.Context, creatorID uint64, _ string, start, end time.Time) ([]*model.PerformanceMetric, error) {
	f.lastCreator, f.lastStart, f.lastEnd = creatorID, start, end
	return f.metrics, f.err
}

func (f *fakeMetricsService) SaveMetric(_ context.Context, metric *model.PerformanceMetric) error {
	f.saved = metric
	return f.err
}

func (f *fakeMetricsService) SavePerformance(_ context.Context, perf *model.ContentPerformance) error {
	f.savedPerf = perf
	return f.err
}

func (f *fakeMetricsService) CalculateFollowerGrowth(context.Context, uint64, string, time.Time, time.Time) (float64, error) {
	return 20, f.err
}

func (f *fakeMetricsService) CalculateRevenueGrowth(context.Context, uint64, time.Time, time.Time) (float64, error) {
	return -50, f.err
}

func (f *fakeMetricsService) CalculateAverageEngagementRate(context.Context, uint64, time.Time, time.Time) (float64, error) {
	return 17.5, f.err
}

type fakeInsightService struct {
	service.InsightService
	snapshot *model.DashboardInsights
	update   *service.InsightsUpdate
	err      error
}

func (f *fakeInsightService) GenerateInsights(_ context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := *f.snapshot
	s.CreatorID, s.PeriodStart, s.PeriodEnd = creatorID, start, end
	return &s, nil
}

func (f *fakeInsightService) UpdateInsights(_ context.Context, update *service.InsightsUpdate) (*model.DashboardInsights, error) {
	f.update = update
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter() (*gin.Engine, *fakeMetricsService, *fakeInsightService) {
	ms := &fakeMetricsService{}
	is := &fakeInsightService{snapshot: &model.DashboardInsights{
		GrowthRate: 20,
		Recommendations: []model.ContentRecommendation{
			{Type: model.RecommendIncreaseInteractivity, Description: "x", Priority: model.PriorityHigh},
		},
		BestTimeToPost: &model.BestTimeSlot{DayOfWeek: time.Tuesday, Hour: 18, AverageEngagementRate: 9, SampleSize: 2},
	}}
	r := SetupRouter(&HandlersGroup{
		MetricsHandler: handler.NewMetricsHandler(ms),
		InsightHandler: handler.NewInsightHandler(is),
	})
	return r, ms, is
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, reader))
	require.Equal(t, http.StatusOK, w.Code)

	var res envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestPing(t *testing.T) {
	r, _, _ := newTestRouter()
	assert.Equal(t, 200, do(t, r, http.MethodGet, "/api/ping", nil).Code)
}

func TestGetMetrics(t *testing.T) {
	r, ms, _ := newTestRouter()
	ms.metrics = []*model.PerformanceMetric{
		{CreatorID: 7, Platform: "youtube", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Followers: 1200},
	}

	res := do(t, r, http.MethodGet, "/api/creators/7/metrics", nil)
	require.Equal(t, 200, res.Code)
	assert.Equal(t, uint64(7), ms.lastCreator)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2026-03-02", list[0]["date"])
	assert.Equal(t, float64(1200), list[0]["followers"])
}

func TestGetMetricsBadCreatorID(t *testing.T) {
	r, _, _ := newTestRouter()
	assert.Equal(t, 400, do(t, r, http.MethodGet, "/api/creators/abc/metrics", nil).Code)
	assert.Equal(t, 400, do(t, r, http.MethodGet, "/api/creators/0/metrics", nil).Code)
}

func TestTimelineQueryValidation(t *testing.T) {
	r, ms, _ := newTestRouter()

	assert.Equal(t, 400, do(t, r, http.MethodGet, "/api/creators/7/metrics/timeline?start=2026-03-01", nil).Code)
	assert.Equal(t, 400, do(t, r, http.MethodGet, "/api/creators/7/metrics/timeline?start=03-01&end=2026-03-07", nil).Code)

	res := do(t, r, http.MethodGet, "/api/creators/7/metrics/timeline?start=2026-03-01&end=2026-03-07", nil)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ms.lastStart)
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), ms.lastEnd)
}

func TestServiceErrorMapping(t *testing.T) {
	r, ms, _ := newTestRouter()
	ms.err = service.ErrCreatorNotFound
	assert.Equal(t, 404, do(t, r, http.MethodGet, "/api/creators/7/growth?start=2026-03-01&end=2026-03-07", nil).Code)

	ms.err = service.ErrInvalidPeriod
	assert.Equal(t, 400, do(t, r, http.MethodGet, "/api/creators/7/metrics/timeline?start=2026-03-07&end=2026-03-01", nil).Code)
}

func TestGetGrowth(t *testing.T) {
	r, _, _ := newTestRouter()
	res := do(t, r, http.MethodGet, "/api/creators/7/growth?start=2026-03-01&end=2026-03-07", nil)
	require.Equal(t, 200, res.Code)

	var growth map[string]float64
	require.NoError(t, json.Unmarshal(res.Data, &growth))
	assert.Equal(t, 20.0, growth["follower_growth"])
	assert.Equal(t, -50.0, growth["revenue_growth"])
	assert.Equal(t, 17.5, growth["average_engagement_rate"])
}

func TestSaveMetric(t *testing.T) {
	r, ms, _ := newTestRouter()

	res := do(t, r, http.MethodPut, "/api/metrics", map[string]any{
		"creator_id":     7,
		"platform":       "YouTube",
		"date":           "2026-03-02",
		"followers":      1200,
		"total_views":    1000,
		"total_likes":    150,
		"total_comments": 20,
		"total_shares":   5,
	})
	require.Equal(t, 200, res.Code)
	require.NotNil(t, ms.saved)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ms.saved.Date)
	assert.InDelta(t, 17.5, ms.saved.EngagementRate, 1e-9)

	assert.Equal(t, 400, do(t, r, http.MethodPut, "/api/metrics", map[string]any{
		"creator_id": 7,
		"platform":   "youtube",
		"date":       "2026-03-02",
		"followers":  -1,
	}).Code)
	assert.Equal(t, 400, do(t, r, http.MethodPut, "/api/metrics", map[string]any{
		"creator_id": "seven",
	}).Code)
}

func TestSavePerformance(t *testing.T) {
	r, ms, _ := newTestRouter()
	res := do(t, r, http.MethodPut, "/api/performances", map[string]any{
		"post_id":    "p1",
		"creator_id": 7,
		"platform":   "tiktok",
		"date":       "2026-03-02",
		"views":      10,
	})
	require.Equal(t, 200, res.Code)
	require.NotNil(t, ms.savedPerf)
	assert.Equal(t, "p1", ms.savedPerf.PostID)
}

func TestGenerateInsights(t *testing.T) {
	r, _, _ := newTestRouter()
	res := do(t, r, http.MethodPost, "/api/creators/7/insights", map[string]any{
		"start": "2026-03-01",
		"end":   "2026-03-07",
	})
	require.Equal(t, 200, res.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &body))
	assert.Equal(t, "2026-03-01", body["period_start"])
	assert.Equal(t, "2026-03-07", body["period_end"])
	best := body["best_time_to_post"].(map[string]any)
	assert.Equal(t, "Tuesday", best["day_name"])
	assert.Len(t, body["recommendations"], 1)
}

func TestUpdateInsights(t *testing.T) {
	r, _, is := newTestRouter()
	res := do(t, r, http.MethodPut, "/api/creators/7/insights", map[string]any{
		"start": "2026-03-01",
		"end":   "2026-03-07",
		"recommendations": []map[string]any{
			{"type": "serialized_content", "description": "post more", "priority": 2},
		},
	})
	require.Equal(t, 200, res.Code)
	require.NotNil(t, is.update)
	assert.Equal(t, uint64(7), is.update.CreatorID)
	assert.Nil(t, is.update.TopContentInsights)
	require.Len(t, is.update.Recommendations, 1)
	assert.Equal(t, "post more", is.update.Recommendations[0].Description)

	is.err = service.ErrSnapshotNotFound
	assert.Equal(t, 404, do(t, r, http.MethodPut, "/api/creators/7/insights", map[string]any{
		"start": "2026-03-01",
		"end":   "2026-03-07",
	}).Code)
}
