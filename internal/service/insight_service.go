package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"Pulse/internal/pkg/cache"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/insight"
	"Pulse/internal/pkg/metrics"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"time"
)

const listInsightsLimit = 50

type InsightService interface {
	GenerateInsights(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error)
	UpdateInsights(ctx context.Context, update *InsightsUpdate) (*model.DashboardInsights, error)
	ListInsights(ctx context.Context, creatorID uint64) ([]*model.DashboardInsights, error)
	GetRecommendations(ctx context.Context, creatorID uint64, start, end time.Time) ([]model.ContentRecommendation, error)
}

// InsightsUpdate 显式更新快照时可替换的部分，nil 表示保持不变
type InsightsUpdate struct {
	CreatorID          uint64
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TopContentInsights []model.ContentInsight
	Recommendations    []model.ContentRecommendation
}

type insightServiceImpl struct {
	metricsService MetricsService
	insightsRepo   repository.DashboardInsightsRepo
	creatorRepo    repository.CreatorRepo
	accountRepo    repository.SocialAccountRepo
	aside          *cache.Aside
	keys           cache.Keys
	ttl            time.Duration
	topLimit       int
}

func NewInsightService(
	metricsService MetricsService,
	insightsRepo repository.DashboardInsightsRepo,
	creatorRepo repository.CreatorRepo,
	accountRepo repository.SocialAccountRepo,
	aside *cache.Aside,
	keys cache.Keys,
	ttl time.Duration,
	topLimit int,
) InsightService {
	if topLimit <= 0 {
		topLimit = consts.DefaultTopContentLimit
	}
	return &insightServiceImpl{
		metricsService: metricsService,
		insightsRepo:   insightsRepo,
		creatorRepo:    creatorRepo,
		accountRepo:    accountRepo,
		aside:          aside,
		keys:           keys,
		ttl:            ttl,
		topLimit:       topLimit,
	}
}

// GenerateInsights 同一 (creator, start, end) 只生成一次：已有快照原样返回，不做任何写入。
// 并发生成时以先写入者为准，后到者拿到同一份快照。
func (s *insightServiceImpl) GenerateInsights(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	start, end, err := normalizePeriod(start, end)
	if err != nil {
		return nil, err
	}
	if err = ensureCreator(ctx, s.creatorRepo, creatorID); err != nil {
		return nil, err
	}

	existing, err := s.getSnapshot(ctx, creatorID, start, end)
	if err == nil {
		metrics.InsightsGenerated.WithLabelValues("existing").Inc()
		return existing, nil
	}
	if !errors.Is(err, ErrSnapshotNotFound) {
		return nil, err
	}

	snapshot, err := s.buildSnapshot(ctx, creatorID, start, end)
	if err != nil {
		return nil, err
	}
	// 取消发生在写入之前则什么都不落库
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	saved, created, err := s.insightsRepo.InsertSnapshot(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	if !created {
		metrics.InsightsGenerated.WithLabelValues("existing").Inc()
		return saved, nil
	}

	s.aside.InvalidateSet(ctx, s.keys.InsightWriteSet(creatorID, start, end))
	metrics.InsightsGenerated.WithLabelValues("generated").Inc()
	log.InfoContext(ctx, "insight snapshot generated",
		"creator_id", creatorID,
		"period_start", start.Format(time.DateOnly),
		"period_end", end.Format(time.DateOnly),
	)
	return saved, nil
}

func (s *insightServiceImpl) UpdateInsights(ctx context.Context, update *InsightsUpdate) (*model.DashboardInsights, error) {
	if update == nil {
		return nil, ErrParamInvalid
	}
	start, end, err := normalizePeriod(update.PeriodStart, update.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if err = ensureCreator(ctx, s.creatorRepo, update.CreatorID); err != nil {
		return nil, err
	}

	current, err := s.insightsRepo.FindSnapshot(ctx, update.CreatorID, start, end)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrSnapshotNotFound
	}
	if update.TopContentInsights != nil {
		current.TopContentInsights = update.TopContentInsights
	}
	if update.Recommendations != nil {
		current.Recommendations = update.Recommendations
	}

	found, err := s.insightsRepo.UpdateSnapshot(ctx, current)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSnapshotNotFound
	}
	s.aside.InvalidateSet(ctx, s.keys.InsightWriteSet(update.CreatorID, start, end))
	return current, nil
}

func (s *insightServiceImpl) ListInsights(ctx context.Context, creatorID uint64) ([]*model.DashboardInsights, error) {
	if err := ensureCreator(ctx, s.creatorRepo, creatorID); err != nil {
		return nil, err
	}
	return cache.GetOrPopulate(ctx, s.aside, s.keys.InsightsList(creatorID), s.ttl,
		func(ctx context.Context) ([]*model.DashboardInsights, error) {
			return s.insightsRepo.ListByCreator(ctx, creatorID, listInsightsLimit)
		})
}

// GetRecommendations 只计算建议，不生成快照
func (s *insightServiceImpl) GetRecommendations(ctx context.Context, creatorID uint64, start, end time.Time) ([]model.ContentRecommendation, error) {
	start, end, err := normalizePeriod(start, end)
	if err != nil {
		return nil, err
	}
	if err = ensureCreator(ctx, s.creatorRepo, creatorID); err != nil {
		return nil, err
	}
	current, err := s.loadPeriod(ctx, creatorID, start, end)
	if err != nil {
		return nil, err
	}
	signals, err := s.signals(ctx, creatorID, current)
	if err != nil {
		return nil, err
	}
	return insight.Select(signals), nil
}

func (s *insightServiceImpl) getSnapshot(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	return cache.GetOrPopulate(ctx, s.aside, s.keys.InsightsPeriod(creatorID, start, end), s.ttl,
		func(ctx context.Context) (*model.DashboardInsights, error) {
			snapshot, err := s.insightsRepo.FindSnapshot(ctx, creatorID, start, end)
			if err != nil {
				return nil, err
			}
			if snapshot == nil {
				// 不存在不写缓存，否则生成后的首次读取会拿到空值
				return nil, ErrSnapshotNotFound
			}
			return snapshot, nil
		})
}

// periodData 一个周期内的原始数据，内容快照已按内容取最新一天
type periodData struct {
	metrics      []*model.PerformanceMetric
	performances []*model.ContentPerformance
}

func (s *insightServiceImpl) loadPeriod(ctx context.Context, creatorID uint64, start, end time.Time) (*periodData, error) {
	list, err := s.metricsService.GetMetricsTimeline(ctx, creatorID, "", start, end)
	if err != nil {
		return nil, err
	}
	perfs, err := s.metricsService.GetCreatorPerformances(ctx, creatorID, start, end)
	if err != nil {
		return nil, err
	}
	return &periodData{
		metrics:      list,
		performances: aggregate.LatestPerPost(perfs),
	}, nil
}

func (s *insightServiceImpl) buildSnapshot(ctx context.Context, creatorID uint64, start, end time.Time) (*model.DashboardInsights, error) {
	current, err := s.loadPeriod(ctx, creatorID, start, end)
	if err != nil {
		return nil, err
	}
	prevStart, prevEnd := util.PreviousPeriod(start, end)
	previous, err := s.loadPeriod(ctx, creatorID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	signals, err := s.signals(ctx, creatorID, current)
	if err != nil {
		return nil, err
	}

	top := aggregate.TopByViews(current.performances, s.topLimit)
	return &model.DashboardInsights{
		CreatorID:            creatorID,
		PeriodStart:          start,
		PeriodEnd:            end,
		GrowthRate:           aggregate.FollowerGrowthRate(aggregate.DailyFollowers(current.metrics)),
		TotalRevenueInPeriod: aggregate.TotalRevenue(current.metrics),
		TopContentInsights:   insight.BuildContentInsights(top),
		Recommendations:      insight.Select(signals),
		BestTimeToPost:       insight.BestTimeToPost(current.performances),
		PeriodComparison:     insight.ComparePeriods(current.totals(), previous.totals()),
		GeneratedAt:          time.Now().UTC(),
	}, nil
}

func (p *periodData) totals() insight.PeriodTotals {
	return insight.PeriodTotals{
		Followers:      aggregate.LatestFollowers(p.metrics),
		Views:          aggregate.TotalViews(p.metrics),
		EngagementRate: aggregate.AverageEngagementRate(p.performances),
		Revenue:        aggregate.TotalRevenue(p.metrics),
	}
}

// signals 汇总建议选择器的输入：每个已连接社交平台的粉丝与增长、平均互动率、变现接入情况
func (s *insightServiceImpl) signals(ctx context.Context, creatorID uint64, current *periodData) (insight.Signals, error) {
	accounts, err := s.accountRepo.ListConnected(ctx, creatorID)
	if err != nil {
		return insight.Signals{}, err
	}

	byPlatform := make(map[string][]*model.PerformanceMetric)
	for _, m := range current.metrics {
		byPlatform[m.Platform] = append(byPlatform[m.Platform], m)
	}

	res := insight.Signals{AverageEngagement: aggregate.AverageEngagementRate(current.performances)}
	for _, acc := range accounts {
		if acc.Kind == consts.AccountKindMonetization {
			res.HasMonetization = true
			continue
		}
		res.ConnectedPlatforms++
		ps := insight.PlatformSignal{Platform: acc.Platform, Followers: acc.Followers}
		if list := byPlatform[acc.Platform]; len(list) > 0 {
			ps.Followers = aggregate.LatestFollowers(list)
			ps.MonthlyGrowth = aggregate.FollowerGrowthRate(list)
		}
		res.Platforms = append(res.Platforms, ps)
	}
	sort.Slice(res.Platforms, func(i, j int) bool {
		return res.Platforms[i].Platform < res.Platforms[j].Platform
	})
	return res, nil
}
