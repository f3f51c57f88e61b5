package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"Pulse/internal/pkg/cache"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"strings"
	"time"
)

// CacheTTL 各读取形态的缓存时长
type CacheTTL struct {
	Metric   time.Duration
	Timeline time.Duration
	Content  time.Duration
	Insight  time.Duration
}

type MetricsService interface {
	GetAllMetrics(ctx context.Context, creatorID uint64) ([]*model.PerformanceMetric, error)
	GetPlatformMetrics(ctx context.Context, creatorID uint64, platform string) ([]*model.PerformanceMetric, error)
	GetDailyMetrics(ctx context.Context, creatorID uint64, platform string, day time.Time) (*model.PerformanceMetric, error)
	GetMetricsTimeline(ctx context.Context, creatorID uint64, platform string, start, end time.Time) ([]*model.PerformanceMetric, error)
	GetCreatorPerformances(ctx context.Context, creatorID uint64, start, end time.Time) ([]*model.ContentPerformance, error)
	GetPostPerformances(ctx context.Context, postID string, start, end time.Time) ([]*model.ContentPerformance, error)
	SaveMetric(ctx context.Context, metric *model.PerformanceMetric) error
	SavePerformance(ctx context.Context, perf *model.ContentPerformance) error
	CalculateFollowerGrowth(ctx context.Context, creatorID uint64, platform string, start, end time.Time) (float64, error)
	CalculateRevenueGrowth(ctx context.Context, creatorID uint64, start, end time.Time) (float64, error)
	CalculateAverageEngagementRate(ctx context.Context, creatorID uint64, start, end time.Time) (float64, error)
}

type metricsServiceImpl struct {
	metricRepo      repository.PerformanceMetricRepo
	performanceRepo repository.ContentPerformanceRepo
	creatorRepo     repository.CreatorRepo
	aside           *cache.Aside
	keys            cache.Keys
	ttl             CacheTTL
}

func NewMetricsService(
	metricRepo repository.PerformanceMetricRepo,
	performanceRepo repository.ContentPerformanceRepo,
	creatorRepo repository.CreatorRepo,
	aside *cache.Aside,
	keys cache.Keys,
	ttl CacheTTL,
) MetricsService {
	return &metricsServiceImpl{
		metricRepo:      metricRepo,
		performanceRepo: performanceRepo,
		creatorRepo:     creatorRepo,
		aside:           aside,
		keys:            keys,
		ttl:             ttl,
	}
}

func (s *metricsServiceImpl) GetAllMetrics(ctx context.Context, creatorID uint64) ([]*model.PerformanceMetric, error) {
	return cache.GetOrPopulate(ctx, s.aside, s.keys.MetricsAll(creatorID), s.ttl.Metric,
		func(ctx context.Context) ([]*model.PerformanceMetric, error) {
			return s.metricRepo.FindMetrics(ctx, repository.MetricQuery{CreatorID: creatorID})
		})
}

func (s *metricsServiceImpl) GetPlatformMetrics(ctx context.Context, creatorID uint64, platform string) ([]*model.PerformanceMetric, error) {
	platform = normalizePlatform(platform)
	if platform == "" {
		return nil, ErrParamInvalid
	}
	return cache.GetOrPopulate(ctx, s.aside, s.keys.MetricsPlatform(creatorID, platform), s.ttl.Metric,
		func(ctx context.Context) ([]*model.PerformanceMetric, error) {
			return s.metricRepo.FindMetrics(ctx, repository.MetricQuery{CreatorID: creatorID, Platform: platform})
		})
}

// GetDailyMetrics 当天没有数据时返回零值指标而不是 nil
func (s *metricsServiceImpl) GetDailyMetrics(ctx context.Context, creatorID uint64, platform string, day time.Time) (*model.PerformanceMetric, error) {
	platform = normalizePlatform(platform)
	if platform == "" || day.IsZero() {
		return nil, ErrParamInvalid
	}
	day = util.GetMidnight(day)

	list, err := cache.GetOrPopulate(ctx, s.aside, s.keys.MetricsDaily(creatorID, platform, day), s.ttl.Metric,
		func(ctx context.Context) ([]*model.PerformanceMetric, error) {
			return s.metricRepo.FindMetrics(ctx, repository.MetricQuery{
				CreatorID: creatorID,
				Platform:  platform,
				From:      day,
				To:        day,
			})
		})
	if err != nil {
		return nil, err
	}
	if len(list) > 0 && list[0] != nil {
		return list[0], nil
	}
	return &model.PerformanceMetric{
		CreatorID:               creatorID,
		Platform:                platform,
		Date:                    day,
		TopPerformingContentIDs: []string{},
	}, nil
}

// GetMetricsTimeline 日期升序；platform 为空表示全部平台
func (s *metricsServiceImpl) GetMetricsTimeline(ctx context.Context, creatorID uint64, platform string, start, end time.Time) ([]*model.PerformanceMetric, error) {
	start, end, err := normalizePeriod(start, end)
	if err != nil {
		return nil, err
	}
	platform = normalizePlatform(platform)
	key := s.keys.MetricsRange(creatorID, platform, start, end)
	return cache.GetOrPopulateTracked(ctx, s.aside, key, s.keys.MetricsRangeIndex(creatorID), s.ttl.Timeline,
		func(ctx context.Context) ([]*model.PerformanceMetric, error) {
			return s.metricRepo.FindMetrics(ctx, repository.MetricQuery{
				CreatorID: creatorID,
				Platform:  platform,
				From:      start,
				To:        end,
			})
		})
}

func (s *metricsServiceImpl) GetCreatorPerformances(ctx context.Context, creatorID uint64, start, end time.Time) ([]*model.ContentPerformance, error) {
	start, end, err := normalizePeriod(start, end)
	if err != nil {
		return nil, err
	}
	key := s.keys.PerformanceCreatorRange(creatorID, start, end)
	return cache.GetOrPopulateTracked(ctx, s.aside, key, s.keys.PerformanceCreatorIndex(creatorID), s.ttl.Content,
		func(ctx context.Context) ([]*model.ContentPerformance, error) {
			return s.performanceRepo.FindPerformances(ctx, repository.PerformanceQuery{
				CreatorID: creatorID,
				From:      start,
				To:        end,
			})
		})
}

func (s *metricsServiceImpl) GetPostPerformances(ctx context.Context, postID string, start, end time.Time) ([]*model.ContentPerformance, error) {
	if postID == "" {
		return nil, ErrParamInvalid
	}
	start, end, err := normalizePeriod(start, end)
	if err != nil {
		return nil, err
	}
	key := s.keys.PerformancePostRange(postID, start, end)
	return cache.GetOrPopulateTracked(ctx, s.aside, key, s.keys.PerformancePostIndex(postID), s.ttl.Content,
		func(ctx context.Context) ([]*model.ContentPerformance, error) {
			return s.performanceRepo.FindPerformances(ctx, repository.PerformanceQuery{
				PostID: postID,
				From:   start,
				To:     end,
			})
		})
}

// SaveMetric 先落库再失效；落库失败时不做任何失效
func (s *metricsServiceImpl) SaveMetric(ctx context.Context, metric *model.PerformanceMetric) error {
	if metric == nil || metric.CreatorID == 0 || metric.Date.IsZero() {
		return ErrParamInvalid
	}
	metric.Platform = normalizePlatform(metric.Platform)
	if metric.Platform == "" {
		return ErrParamInvalid
	}
	metric.Date = util.GetMidnight(metric.Date)

	if err := s.metricRepo.ReplaceMetric(ctx, metric); err != nil {
		return err
	}
	s.aside.InvalidateSet(ctx, s.keys.MetricWriteSet(metric.CreatorID, metric.Platform, metric.Date))
	return nil
}

func (s *metricsServiceImpl) SavePerformance(ctx context.Context, perf *model.ContentPerformance) error {
	if perf == nil || perf.PostID == "" || perf.CreatorID == 0 || perf.Date.IsZero() || perf.Views < 0 {
		return ErrParamInvalid
	}
	perf.Platform = normalizePlatform(perf.Platform)
	if perf.Platform == "" {
		return ErrParamInvalid
	}
	perf.Date = util.GetMidnight(perf.Date)

	if err := s.performanceRepo.ReplacePerformance(ctx, perf); err != nil {
		return err
	}
	s.aside.InvalidateSet(ctx, s.keys.PerformanceWriteSet(perf.CreatorID, perf.PostID))
	return nil
}

// CalculateFollowerGrowth 周期首日与末日粉丝数（各平台按天求和）的增长率
func (s *metricsServiceImpl) CalculateFollowerGrowth(ctx context.Context, creatorID uint64, platform string, start, end time.Time) (float64, error) {
	if err := s.ensureCreator(ctx, creatorID); err != nil {
		return 0, err
	}
	metrics, err := s.GetMetricsTimeline(ctx, creatorID, platform, start, end)
	if err != nil {
		return 0, err
	}
	return aggregate.FollowerGrowthRate(aggregate.DailyFollowers(metrics)), nil
}

// CalculateRevenueGrowth 周期总收入相对紧邻的上一个等长周期的变化
func (s *metricsServiceImpl) CalculateRevenueGrowth(ctx context.Context, creatorID uint64, start, end time.Time) (float64, error) {
	if err := s.ensureCreator(ctx, creatorID); err != nil {
		return 0, err
	}
	current, err := s.GetMetricsTimeline(ctx, creatorID, "", start, end)
	if err != nil {
		return 0, err
	}
	prevStart, prevEnd := util.PreviousPeriod(start, end)
	previous, err := s.GetMetricsTimeline(ctx, creatorID, "", prevStart, prevEnd)
	if err != nil {
		return 0, err
	}
	return aggregate.PercentageChange(aggregate.TotalRevenue(current), aggregate.TotalRevenue(previous)), nil
}

// CalculateAverageEngagementRate 每条内容取周期内最新一天的快照后求平均
func (s *metricsServiceImpl) CalculateAverageEngagementRate(ctx context.Context, creatorID uint64, start, end time.Time) (float64, error) {
	if err := s.ensureCreator(ctx, creatorID); err != nil {
		return 0, err
	}
	list, err := s.GetCreatorPerformances(ctx, creatorID, start, end)
	if err != nil {
		return 0, err
	}
	return aggregate.AverageEngagementRate(aggregate.LatestPerPost(list)), nil
}

func (s *metricsServiceImpl) ensureCreator(ctx context.Context, creatorID uint64) error {
	return ensureCreator(ctx, s.creatorRepo, creatorID)
}

func ensureCreator(ctx context.Context, repo repository.CreatorRepo, creatorID uint64) error {
	if creatorID == 0 {
		return ErrParamInvalid
	}
	creator, err := repo.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}
	if creator == nil {
		return ErrCreatorNotFound
	}
	return nil
}

// normalizePeriod 截断到天，end 早于 start 视为无效周期
func normalizePeriod(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	start, end = util.GetMidnight(start), util.GetMidnight(end)
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}
