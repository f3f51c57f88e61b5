package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrInvalidPeriod    = errors.New("统计周期无效")
	ErrCreatorNotFound  = errors.New("创作者不存在")
	ErrSnapshotNotFound = errors.New("洞察快照不存在")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrInvalidPeriod:    BadRequest,
	ErrCreatorNotFound:  NotFound,
	ErrSnapshotNotFound: NotFound,
	UnExpectedError:     InternalServerError,
}
