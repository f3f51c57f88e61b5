package api

import (
	"Pulse/internal/api/middleware"
	"Pulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Metrics & CORS & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		creatorGroup := apiGroup.Group("/creators/:creator_id")
		{
			creatorGroup.GET("/metrics", group.MetricsHandler.GetMetrics)
			creatorGroup.GET("/metrics/daily", group.MetricsHandler.GetDailyMetrics)
			creatorGroup.GET("/metrics/timeline", group.MetricsHandler.GetTimeline)
			creatorGroup.GET("/growth", group.MetricsHandler.GetGrowth)
			creatorGroup.GET("/performances", group.MetricsHandler.GetCreatorPerformances)

			creatorGroup.POST("/insights", group.InsightHandler.GenerateInsights)
			creatorGroup.GET("/insights", group.InsightHandler.ListInsights)
			creatorGroup.PUT("/insights", group.InsightHandler.UpdateInsights)
			creatorGroup.GET("/recommendations", group.InsightHandler.GetRecommendations)
		}

		apiGroup.GET("/posts/:post_id/performances", group.MetricsHandler.GetPostPerformances)
		apiGroup.PUT("/metrics", group.MetricsHandler.SaveMetric)
		apiGroup.PUT("/performances", group.MetricsHandler.SavePerformance)
	}

	return r
}
