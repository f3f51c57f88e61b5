package api

import "Pulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MetricsHandler *handler.MetricsHandler
	InsightHandler *handler.InsightHandler
}
