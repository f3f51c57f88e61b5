package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/cache"
	pulseredis "Pulse/internal/pkg/redis"
	"Pulse/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

// memStore 内存版的指标、内容快照与洞察快照存储
type memStore struct {
	mu           sync.Mutex
	metrics      []*model.PerformanceMetric
	performances []*model.ContentPerformance
	snapshots    []*model.DashboardInsights

	metricFinds   int
	perfFinds     int
	snapshotFinds int
	inserts       int
	updates       int

	replaceErr   error
	hideSnapshot bool
	onFindMetric func()
}

func (s *memStore) FindMetrics(_ context.Context, q repository.MetricQuery) ([]*model.PerformanceMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metricFinds++
	if s.onFindMetric != nil {
		s.onFindMetric()
	}
	res := make([]*model.PerformanceMetric, 0)
	for _, m := range s.metrics {
		if m.CreatorID != q.CreatorID || (q.Platform != "" && m.Platform != q.Platform) || !inRange(m.Date, q.From, q.To) {
			continue
		}
		cp := *m
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].Platform < res[j].Platform
	})
	return res, nil
}

func (s *memStore) ReplaceMetric(_ context.Context, metric *model.PerformanceMetric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	cp := *metric
	for i, m := range s.metrics {
		if m.CreatorID == metric.CreatorID && m.Platform == metric.Platform && m.Date.Equal(metric.Date) {
			s.metrics[i] = &cp
			return nil
		}
	}
	s.metrics = append(s.metrics, &cp)
	return nil
}

func (s *memStore) FindPerformances(_ context.Context, q repository.PerformanceQuery) ([]*model.ContentPerformance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perfFinds++
	res := make([]*model.ContentPerformance, 0)
	for _, p := range s.performances {
		if q.PostID != "" && p.PostID != q.PostID {
			continue
		}
		if q.PostID == "" && p.CreatorID != q.CreatorID {
			continue
		}
		if !inRange(p.Date, q.From, q.To) {
			continue
		}
		cp := *p
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].PostID < res[j].PostID
	})
	return res, nil
}

func (s *memStore) ReplacePerformance(_ context.Context, perf *model.ContentPerformance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replaceErr != nil {
		return s.replaceErr
	}
	cp := *perf
	for i, p := range s.performances {
		if p.PostID == perf.PostID && p.Date.Equal(perf.Date) {
			s.performances[i] = &cp
			return nil
		}
	}
	s.performances = append(s.performances, &cp)
	return nil
}

func (s *memStore) FindSnapshot(_ context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotFinds++
	if s.hideSnapshot {
		return nil, nil
	}
	if snap := s.lookupSnapshot(creatorID, start, end); snap != nil {
		cp := *snap
		return &cp, nil
	}
	return nil, nil
}

func (s *memStore) lookupSnapshot(creatorID uint64, start, end time.Time) *model.DashboardInsights {
	for _, snap := range s.snapshots {
		if snap.CreatorID == creatorID && snap.PeriodStart.Equal(start) && snap.PeriodEnd.Equal(end) {
			return snap
		}
	}
	return nil
}

func (s *memStore) InsertSnapshot(_ context.Context, snapshot *model.DashboardInsights) (*model.DashboardInsights, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.lookupSnapshot(snapshot.CreatorID, snapshot.PeriodStart, snapshot.PeriodEnd); existing != nil {
		cp := *existing
		return &cp, false, nil
	}
	s.inserts++
	cp := *snapshot
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.snapshots = append(s.snapshots, &cp)
	out := cp
	return &out, true, nil
}

func (s *memStore) UpdateSnapshot(_ context.Context, snapshot *model.DashboardInsights) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := s.lookupSnapshot(snapshot.CreatorID, snapshot.PeriodStart, snapshot.PeriodEnd)
	if existing == nil {
		return false, nil
	}
	s.updates++
	existing.TopContentInsights = snapshot.TopContentInsights
	existing.Recommendations = snapshot.Recommendations
	existing.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (s *memStore) ListByCreator(_ context.Context, creatorID uint64, limit int64) ([]*model.DashboardInsights, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]*model.DashboardInsights, 0)
	for _, snap := range s.snapshots {
		if snap.CreatorID == creatorID {
			cp := *snap
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].PeriodStart.After(res[j].PeriodStart) })
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

type fakeCreators struct {
	ids map[uint64]bool
}

func (f *fakeCreators) GetCreator(_ context.Context, id uint64) (*model.Creator, error) {
	if !f.ids[id] {
		return nil, nil
	}
	return &model.Creator{ID: id, Handle: "creator", Status: 1}, nil
}

func (f *fakeCreators) ListActiveCreatorIDs(_ context.Context) ([]uint64, error) {
	ids := make([]uint64, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeAccounts struct {
	byCreator map[uint64][]*model.SocialAccount
}

func (f *fakeAccounts) ListConnected(_ context.Context, creatorID uint64) ([]*model.SocialAccount, error) {
	return f.byCreator[creatorID], nil
}

type testEnv struct {
	mr       *miniredis.Miniredis
	store    *memStore
	creators *fakeCreators
	accounts *fakeAccounts
	keys     cache.Keys
	metrics  MetricsService
	insights InsightService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &testEnv{
		mr:       mr,
		store:    &memStore{},
		creators: &fakeCreators{ids: map[uint64]bool{1: true}},
		accounts: &fakeAccounts{byCreator: map[uint64][]*model.SocialAccount{}},
		keys:     cache.NewKeys("test"),
	}
	aside := cache.NewAside(pulseredis.NewBackend(rdb), time.Hour)
	ttl := CacheTTL{Metric: time.Minute, Timeline: time.Minute, Content: time.Minute, Insight: time.Hour}
	env.metrics = NewMetricsService(env.store, env.store, env.creators, aside, env.keys, ttl)
	env.insights = NewInsightService(env.metrics, env.store, env.creators, env.accounts, aside, env.keys, ttl.Insight, 5)
	return env
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
