package cache

import (
	"Pulse/internal/pkg/consts"
	"strconv"
	"strings"
	"time"
)

const openBound = "-"

// Keys 根据实体类型、读取形态和筛选字段生成确定性的缓存键。
// 同一组参数永远得到同一个键，写入方据此精确失效读取方写过的键。
type Keys struct {
	ns string
}

func NewKeys(namespace string) Keys {
	if namespace == "" {
		namespace = "pulse"
	}
	return Keys{ns: namespace}
}

func (k Keys) build(kind, shape string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString(k.ns)
	sb.WriteByte(':')
	sb.WriteString(kind)
	sb.WriteByte(':')
	sb.WriteString(shape)
	for _, p := range parts {
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	return sb.String()
}

func id(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func date(t time.Time) string {
	if t.IsZero() {
		return openBound
	}
	return t.UTC().Format(time.DateOnly)
}

func platformPart(platform string) string {
	if platform == "" {
		return "*"
	}
	return platform
}

// MetricsAll 创作者全部平台的全部指标
func (k Keys) MetricsAll(creatorID uint64) string {
	return k.build(consts.KindMetrics, consts.ShapeAll, id(creatorID))
}

// MetricsPlatform 创作者单个平台的全部指标
func (k Keys) MetricsPlatform(creatorID uint64, platform string) string {
	return k.build(consts.KindMetrics, consts.ShapePlatform, id(creatorID), platform)
}

// MetricsDaily 创作者单个平台单日指标
func (k Keys) MetricsDaily(creatorID uint64, platform string, day time.Time) string {
	return k.build(consts.KindMetrics, consts.ShapeDaily, id(creatorID), platform, date(day))
}

// MetricsRange 日期区间指标，platform 为空表示全部平台
func (k Keys) MetricsRange(creatorID uint64, platform string, from, to time.Time) string {
	return k.build(consts.KindMetrics, consts.ShapeRange, id(creatorID), platformPart(platform), date(from), date(to))
}

// MetricsRangeIndex 记录创作者所有区间键的集合
func (k Keys) MetricsRangeIndex(creatorID uint64) string {
	return k.build(consts.KindMetrics, consts.ShapeIndex, id(creatorID))
}

func (k Keys) PerformanceCreatorRange(creatorID uint64, from, to time.Time) string {
	return k.build(consts.KindPerformance, consts.ShapeCreator, id(creatorID), date(from), date(to))
}

func (k Keys) PerformancePostRange(postID string, from, to time.Time) string {
	return k.build(consts.KindPerformance, consts.ShapePost, postID, date(from), date(to))
}

func (k Keys) PerformanceCreatorIndex(creatorID uint64) string {
	return k.build(consts.KindPerformance, consts.ShapeIndex, consts.ShapeCreator, id(creatorID))
}

func (k Keys) PerformancePostIndex(postID string) string {
	return k.build(consts.KindPerformance, consts.ShapeIndex, consts.ShapePost, postID)
}

// InsightsPeriod 精确周期的洞察快照
func (k Keys) InsightsPeriod(creatorID uint64, start, end time.Time) string {
	return k.build(consts.KindInsights, consts.ShapePeriod, id(creatorID), date(start), date(end))
}

func (k Keys) InsightsList(creatorID uint64) string {
	return k.build(consts.KindInsights, consts.ShapeList, id(creatorID))
}

// WriteSet 一次写入需要失效的键：直接删除的键 + 需要展开的索引
type WriteSet struct {
	Keys    []string
	Indexes []string
}

// MetricWriteSet 写入 (creator, platform, day) 指标可能影响的全部读取键
func (k Keys) MetricWriteSet(creatorID uint64, platform string, day time.Time) WriteSet {
	return WriteSet{
		Keys: []string{
			k.MetricsAll(creatorID),
			k.MetricsPlatform(creatorID, platform),
			k.MetricsDaily(creatorID, platform, day),
		},
		Indexes: []string{k.MetricsRangeIndex(creatorID)},
	}
}

// PerformanceWriteSet 写入某条内容快照可能影响的全部读取键
func (k Keys) PerformanceWriteSet(creatorID uint64, postID string) WriteSet {
	return WriteSet{
		Indexes: []string{
			k.PerformanceCreatorIndex(creatorID),
			k.PerformancePostIndex(postID),
		},
	}
}

// InsightWriteSet 快照新增或更新后需要失效的键
func (k Keys) InsightWriteSet(creatorID uint64, start, end time.Time) WriteSet {
	return WriteSet{
		Keys: []string{
			k.InsightsPeriod(creatorID, start, end),
			k.InsightsList(creatorID),
		},
	}
}

// KindOf 从键中取出实体类型，用作指标标签
func KindOf(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 3 {
		return "unknown"
	}
	return parts[1]
}
