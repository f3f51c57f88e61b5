package wire

import (
	"Pulse/internal/api"
	"Pulse/internal/api/config"
	"Pulse/internal/api/handler"
	"Pulse/internal/job"
	"Pulse/internal/pkg/cache"
	"Pulse/internal/pkg/cron"
	"Pulse/internal/pkg/kafka"
	pulseredis "Pulse/internal/pkg/redis"
	"Pulse/internal/repository"
	"Pulse/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// CacheTTLs 把配置中的秒数换成各读取形态的 TTL
func CacheTTLs(cfg config.CacheConfig) service.CacheTTL {
	return service.CacheTTL{
		Metric:   seconds(cfg.MetricTTL),
		Timeline: seconds(cfg.TimelineTTL),
		Content:  seconds(cfg.ContentTTL),
		Insight:  seconds(cfg.InsightTTL),
	}
}

// indexTTL 索引集合至少要活得比它记录的最长缓存项久
func indexTTL(ttl service.CacheTTL) time.Duration {
	return max(ttl.Metric, ttl.Timeline, ttl.Content, ttl.Insight)
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, rdb redis.UniversalClient, cfg *config.Config) (*ApplicationContainer, error) {
	creatorRepo := repository.NewCreatorRepo(db)
	accountRepo := repository.NewSocialAccountRepo(db)
	metricRepo := repository.NewPerformanceMetricRepo(mongoDB)
	performanceRepo := repository.NewContentPerformanceRepo(mongoDB)
	insightsRepo := repository.NewDashboardInsightsRepo(mongoDB)

	backend := pulseredis.NewBackend(rdb)
	ttl := CacheTTLs(cfg.Cache)
	aside := cache.NewAside(backend, indexTTL(ttl))
	keys := cache.NewKeys(cfg.Cache.Namespace)

	metricsService := service.NewMetricsService(metricRepo, performanceRepo, creatorRepo, aside, keys, ttl)
	insightService := service.NewInsightService(metricsService, insightsRepo, creatorRepo, accountRepo,
		aside, keys, ttl.Insight, cfg.Insights.TopContentLimit)

	handlers := &api.HandlersGroup{
		MetricsHandler: handler.NewMetricsHandler(metricsService),
		InsightHandler: handler.NewInsightHandler(insightService),
	}
	router := api.SetupRouter(handlers)

	rollupJob := job.NewRollupJob(creatorRepo, accountRepo, metricsService, backend, seconds(cfg.Rollup.LockTTL))
	cronMgr := cron.NewCronManager(cfg.Rollup.Spec, rollupJob)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, metricsService)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
