package job

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/service"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

type fakeLocker struct {
	locked   bool
	unlocked []string
}

func (f *fakeLocker) TryLock(_ context.Context, _ string, _ string, _ time.Duration, _ int) (bool, error) {
	return !f.locked, nil
}

func (f *fakeLocker) UnLock(_ context.Context, key string, _ string) {
	f.unlocked = append(f.unlocked, key)
}

type fakeMetrics struct {
	service.MetricsService
	perfs    []*model.ContentPerformance
	previous map[string]*model.PerformanceMetric
	saved    []*model.PerformanceMetric
}

func (f *fakeMetrics) GetCreatorPerformances(_ context.Context, _ uint64, _, _ time.Time) ([]*model.ContentPerformance, error) {
	return f.perfs, nil
}

func (f *fakeMetrics) GetDailyMetrics(_ context.Context, creatorID uint64, platform string, d time.Time) (*model.PerformanceMetric, error) {
	if m, ok := f.previous[platform]; ok {
		return m, nil
	}
	return &model.PerformanceMetric{CreatorID: creatorID, Platform: platform, Date: d}, nil
}

func (f *fakeMetrics) SaveMetric(_ context.Context, m *model.PerformanceMetric) error {
	f.saved = append(f.saved, m)
	return nil
}

type fakeAccounts []*model.SocialAccount

func (f fakeAccounts) ListConnected(context.Context, uint64) ([]*model.SocialAccount, error) {
	return f, nil
}

type fakeCreators []uint64

func (f fakeCreators) GetCreator(_ context.Context, id uint64) (*model.Creator, error) {
	return &model.Creator{ID: id}, nil
}

func (f fakeCreators) ListActiveCreatorIDs(context.Context) ([]uint64, error) {
	return f, nil
}

func TestRollupMetrics(t *testing.T) {
	perfs := []*model.ContentPerformance{
		{PostID: "a", Platform: "youtube", Views: 1000, Likes: 150, Comments: 20, Shares: 5, EstimatedRevenue: 0.1},
		{PostID: "b", Platform: "youtube", Views: 3000, Likes: 30, EstimatedRevenue: 0.2},
		{PostID: "c", Platform: "tiktok", Views: 10},
	}
	accounts := []*model.SocialAccount{
		{Platform: "youtube", Kind: consts.AccountKindSocial, Followers: 1500},
		{Platform: "instagram", Kind: consts.AccountKindSocial, Followers: 40},
		{Platform: "patreon", Kind: consts.AccountKindMonetization},
	}

	got := rollupMetrics(7, day, perfs, accounts)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"instagram", "tiktok", "youtube"}, []string{got[0].Platform, got[1].Platform, got[2].Platform})

	ig := got[0]
	assert.Equal(t, int64(40), ig.Followers)
	assert.Zero(t, ig.TotalViews)
	assert.Empty(t, ig.TopPerformingContentIDs)

	yt := got[2]
	assert.Equal(t, uint64(7), yt.CreatorID)
	assert.Equal(t, day, yt.Date)
	assert.Equal(t, int64(1500), yt.Followers)
	assert.Equal(t, int64(4000), yt.TotalViews)
	assert.Equal(t, int64(180), yt.TotalLikes)
	assert.InDelta(t, 0.3, yt.EstimatedRevenue, 1e-12)
	assert.InDelta(t, 5.125, yt.EngagementRate, 1e-9)
	assert.Equal(t, []string{"b", "a"}, yt.TopPerformingContentIDs)
}

func TestRollupCreatorComputesFollowerGrowth(t *testing.T) {
	metrics := &fakeMetrics{
		perfs: []*model.ContentPerformance{{PostID: "a", Platform: "youtube", Views: 100}},
		previous: map[string]*model.PerformanceMetric{
			"youtube": {ID: primitive.NewObjectID(), Platform: "youtube", Followers: 1200},
		},
	}
	accounts := fakeAccounts{
		{Platform: "youtube", Kind: consts.AccountKindSocial, Followers: 1500},
		{Platform: "tiktok", Kind: consts.AccountKindSocial, Followers: 90},
	}
	locker := &fakeLocker{}
	j := NewRollupJob(fakeCreators{7}, accounts, metrics, locker, time.Minute)

	require.NoError(t, j.RollupCreator(context.Background(), 7, day))
	require.Len(t, metrics.saved, 2)
	assert.Equal(t, "tiktok", metrics.saved[0].Platform)
	assert.Zero(t, metrics.saved[0].FollowersGrowth)
	assert.Equal(t, int64(300), metrics.saved[1].FollowersGrowth)
	assert.Equal(t, []string{"lock:rollup:creator:7"}, locker.unlocked)
}

func TestRollupCreatorSkipsWhenLocked(t *testing.T) {
	metrics := &fakeMetrics{}
	j := NewRollupJob(fakeCreators{7}, fakeAccounts{}, metrics, &fakeLocker{locked: true}, time.Minute)

	require.NoError(t, j.RollupCreator(context.Background(), 7, day))
	assert.Empty(t, metrics.saved)
}

func TestRunRollsUpPreviousDay(t *testing.T) {
	metrics := &fakeMetrics{perfs: []*model.ContentPerformance{{PostID: "a", Platform: "youtube", Views: 1}}}
	j := NewRollupJob(fakeCreators{1, 2}, fakeAccounts{}, metrics, &fakeLocker{}, time.Minute)
	j.now = func() time.Time { return time.Date(2026, 3, 3, 0, 10, 0, 0, time.UTC) }

	j.Run()
	require.Len(t, metrics.saved, 2)
	for _, m := range metrics.saved {
		assert.Equal(t, day, m.Date)
	}
}
