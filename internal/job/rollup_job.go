package job

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/aggregate"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"Pulse/internal/service"
	"context"
	log "log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Locker 跨实例的互斥锁，同一创作者同一时间只由一个实例汇总
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key string, value string)
}

// RollupJob 每日把前一天的内容快照按平台汇总为 PerformanceMetric
type RollupJob struct {
	creatorRepo repository.CreatorRepo
	accountRepo repository.SocialAccountRepo
	metricsSvc  service.MetricsService
	locker      Locker
	lockTTL     time.Duration
	now         func() time.Time
}

func NewRollupJob(
	creatorRepo repository.CreatorRepo,
	accountRepo repository.SocialAccountRepo,
	metricsSvc service.MetricsService,
	locker Locker,
	lockTTL time.Duration,
) *RollupJob {
	return &RollupJob{
		creatorRepo: creatorRepo,
		accountRepo: accountRepo,
		metricsSvc:  metricsSvc,
		locker:      locker,
		lockTTL:     lockTTL,
		now:         time.Now,
	}
}

func (s *RollupJob) Run() {
	ctx := logger.NewTraceContext(context.Background(), "job")
	day := util.GetMidnight(s.now()).AddDate(0, 0, -1)

	ids, err := s.creatorRepo.ListActiveCreatorIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list creators error", "err", err)
		return
	}

	failed := 0
	for _, id := range ids {
		if err = s.RollupCreator(ctx, id, day); err != nil {
			failed++
			log.ErrorContext(ctx, "rollup creator metrics error", "creator_id", id, "err", err)
		}
	}
	log.InfoContext(ctx, "rollup metrics finished", "date", day.Format(time.DateOnly), "creators", len(ids), "failed", failed)
}

// RollupCreator 汇总单个创作者某一天的指标；拿不到锁说明其他实例正在处理，直接跳过
func (s *RollupJob) RollupCreator(ctx context.Context, creatorID uint64, day time.Time) error {
	lockKey := consts.RollupCreatorLock + strconv.FormatUint(creatorID, 10)
	token := uuid.NewString()
	ok, err := s.locker.TryLock(ctx, lockKey, token, s.lockTTL, 0)
	if err != nil {
		return err
	}
	if !ok {
		log.InfoContext(ctx, "rollup locked by another instance", "creator_id", creatorID)
		return nil
	}
	defer s.locker.UnLock(ctx, lockKey, token)

	perfs, err := s.metricsSvc.GetCreatorPerformances(ctx, creatorID, day, day)
	if err != nil {
		return err
	}
	accounts, err := s.accountRepo.ListConnected(ctx, creatorID)
	if err != nil {
		return err
	}

	for _, m := range rollupMetrics(creatorID, day, perfs, accounts) {
		prev, err := s.metricsSvc.GetDailyMetrics(ctx, creatorID, m.Platform, day.AddDate(0, 0, -1))
		if err != nil {
			return err
		}
		if !prev.ID.IsZero() {
			m.FollowersGrowth = m.Followers - prev.Followers
		}
		if err = s.metricsSvc.SaveMetric(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// rollupMetrics 按平台汇总；粉丝数取已连接账号，只有账号没有内容的平台也会产生一条指标
func rollupMetrics(creatorID uint64, day time.Time, perfs []*model.ContentPerformance, accounts []*model.SocialAccount) []*model.PerformanceMetric {
	byPlatform := make(map[string][]*model.ContentPerformance)
	for _, p := range aggregate.LatestPerPost(perfs) {
		byPlatform[p.Platform] = append(byPlatform[p.Platform], p)
	}
	followers := make(map[string]int64)
	for _, acc := range accounts {
		if acc.Kind != consts.AccountKindSocial {
			continue
		}
		followers[acc.Platform] = acc.Followers
		if _, ok := byPlatform[acc.Platform]; !ok {
			byPlatform[acc.Platform] = nil
		}
	}

	platforms := make([]string, 0, len(byPlatform))
	for p := range byPlatform {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	res := make([]*model.PerformanceMetric, 0, len(platforms))
	for _, platform := range platforms {
		list := byPlatform[platform]
		m := &model.PerformanceMetric{
			CreatorID: creatorID,
			Platform:  platform,
			Date:      day,
			Followers: followers[platform],
		}
		revenue := decimal.Zero
		for _, p := range list {
			m.TotalViews += p.Views
			m.TotalLikes += p.Likes
			m.TotalComments += p.Comments
			m.TotalShares += p.Shares
			revenue = revenue.Add(decimal.NewFromFloat(p.EstimatedRevenue))
		}
		m.EstimatedRevenue, _ = revenue.Float64()
		m.EngagementRate = aggregate.EngagementRate(m.TotalViews, m.TotalLikes, m.TotalComments, m.TotalShares)

		top := aggregate.TopByViews(list, consts.DefaultTopContentLimit)
		m.TopPerformingContentIDs = make([]string, 0, len(top))
		for _, p := range top {
			m.TopPerformingContentIDs = append(m.TopPerformingContentIDs, p.PostID)
		}
		res = append(res, m)
	}
	return res
}
