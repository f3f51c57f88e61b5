package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightSvc service.InsightService
}

func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightSvc: insightSvc,
	}
}

// GenerateInsights 同一周期重复调用返回已有快照
func (h *InsightHandler) GenerateInsights(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PeriodQuery
	if err = bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.insightSvc.GenerateInsights(c.Request.Context(), creatorID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToInsightsDTO(snapshot)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *InsightHandler) UpdateInsights(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateInsightsDTO
	if err = bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := parsePeriod(&dto.PeriodQuery{Start: req.Start, End: req.End})
	if err != nil {
		response.Error(c, err)
		return
	}
	contents, err := dto.ToContentInsights(req.TopContentInsights)
	if err != nil {
		response.Error(c, err)
		return
	}
	recs, err := dto.ToRecommendations(req.Recommendations)
	if err != nil {
		response.Error(c, err)
		return
	}

	snapshot, err := h.insightSvc.UpdateInsights(c.Request.Context(), &service.InsightsUpdate{
		CreatorID:          creatorID,
		PeriodStart:        start,
		PeriodEnd:          end,
		TopContentInsights: contents,
		Recommendations:    recs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToInsightsDTO(snapshot)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *InsightHandler) ListInsights(c *gin.Context) {
	creatorID, err := creatorIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.insightSvc.ListInsights(c.Request.Context(), creatorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToInsightsDTOs(list)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *InsightHandler) GetRecommendations(c *gin.Context) {
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

	recs, err := h.insightSvc.GetRecommendations(c.Request.Context(), creatorID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	res, err := dto.ToRecommendationDTOs(recs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
