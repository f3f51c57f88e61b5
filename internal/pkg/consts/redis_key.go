package consts

// 缓存键的实体类型，完整键为 {namespace}:{kind}:{shape}:{selectors...}
const (
	KindMetrics     = "metrics"
	KindPerformance = "performance"
	KindInsights    = "insights"
)

// 读取形态，每种形态独立前缀，失效时据此枚举受影响的键
const (
	ShapeAll      = "all"
	ShapePlatform = "platform"
	ShapeDaily    = "daily"
	ShapeRange    = "range"
	ShapeCreator  = "creator"
	ShapePost     = "post"
	ShapePeriod   = "period"
	ShapeList     = "list"
	ShapeIndex    = "idx"
)

const (
	RollupCreatorLock = "lock:rollup:creator:"
)
