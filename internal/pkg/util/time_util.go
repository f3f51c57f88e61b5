package util

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// GetMidnight 截断到 UTC 零点，所有指标日期都以此为准
func GetMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 2006-01-02 格式的日期
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DaysBetween 返回闭区间 [start, end] 包含的天数
func DaysBetween(start, end time.Time) int {
	s, e := GetMidnight(start), GetMidnight(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// PreviousPeriod 紧邻 [start, end] 之前、长度相同的区间
func PreviousPeriod(start, end time.Time) (time.Time, time.Time) {
	n := DaysBetween(start, end)
	s := GetMidnight(start)
	return s.AddDate(0, 0, -n), s.AddDate(0, 0, -1)
}
