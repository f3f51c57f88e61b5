package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/model"
	"Pulse/internal/pkg/response"
	"Pulse/internal/pkg/util"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metricsSvc service.MetricsService
}

func NewMetricsHandler(metricsSvc service.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		metricsSvc: metricsSvc,
	}
}

// GetMetrics 创作者全部指标，可选 platform 过滤
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var metrics []*model.PerformanceMetric
	if platform := c.Query("platform"); platform != "" {
		metrics, err = h.metricsSvc.GetPlatformMetrics(c.Request.Context(), creatorID, platform)
	} else {
		metrics, err = h.metricsSvc.GetAllMetrics(c.Request.Context(), creatorID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToMetricDTOs(metrics)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *MetricsHandler) GetDailyMetrics(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.DailyQuery
	if err = bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	day, err := util.ParseDate(query.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	metric, err := h.metricsSvc.GetDailyMetrics(c.Request.Context(), creatorID, query.Platform, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToMetricDTO(metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *MetricsHandler) GetTimeline(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.PeriodQuery
	if err = bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics, err := h.metricsSvc.GetMetricsTimeline(c.Request.Context(), creatorID, query.Platform, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToMetricDTOs(metrics)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetGrowth 粉丝增长、收入增长与平均互动率
func (h *MetricsHandler) GetGrowth(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.PeriodQuery
	if err = bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	followerGrowth, err := h.metricsSvc.CalculateFollowerGrowth(ctx, creatorID, query.Platform, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	revenueGrowth, err := h.metricsSvc.CalculateRevenueGrowth(ctx, creatorID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	avgEngagement, err := h.metricsSvc.CalculateAverageEngagementRate(ctx, creatorID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.GrowthDTO{
		FollowerGrowth:        followerGrowth,
		RevenueGrowth:         revenueGrowth,
		AverageEngagementRate: avgEngagement,
	})
}

func (h *MetricsHandler) GetCreatorPerformances(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.PeriodQuery
	if err = bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	perfs, err := h.metricsSvc.GetCreatorPerformances(c.Request.Context(), creatorID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToPerformanceDTOs(perfs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *MetricsHandler) GetPostPerformances(c *gin.Context) {
	postID := c.Param("post_id")
	if postID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var query dto.PeriodQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&query)
	if err != nil {
		response.Error(c, err)
		return
	}

	perfs, err := h.metricsSvc.GetPostPerformances(c.Request.Context(), postID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToPerformanceDTOs(perfs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *MetricsHandler) SaveMetric(c *gin.Context) {
	var req dto.SaveMetricDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	metric, err := req.ToModel()
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = h.metricsSvc.SaveMetric(c.Request.Context(), metric); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *MetricsHandler) SavePerformance(c *gin.Context) {
	var req dto.SavePerformanceDTO
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	perf, err := req.ToModel()
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = h.metricsSvc.SavePerformance(c.Request.Context(), perf); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
