package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/pkg/util"
	"Pulse/internal/service"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func creatorIDParam(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("creator_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

func bindQuery(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		return service.ErrParamInvalid
	}
	return util.ValidateDTO(obj)
}

func bindJSON(c *gin.Context, obj any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return service.ErrParamInvalid
		}
		return err
	}
	return util.ValidateDTO(obj)
}

func parsePeriod(q *dto.PeriodQuery) (time.Time, time.Time, error) {
	start, err := util.ParseDate(q.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := util.ParseDate(q.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
