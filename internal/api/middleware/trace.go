package middleware

import (
	"Pulse/internal/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceHeader       = "X-Trace-ID"
	traceparentHeader = "traceparent"
	maxTraceIDLen     = 64
)

// validTraceID 只接受短的字母数字与 - _，其余值会原样进入日志与响应头
func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// incomingTraceID 优先 X-Trace-ID，其次 W3C traceparent 中的 trace-id 段
func incomingTraceID(c *gin.Context) string {
	if id := c.GetHeader(TraceHeader); validTraceID(id) {
		return id
	}
	parts := strings.Split(c.GetHeader(traceparentHeader), "-")
	if len(parts) == 4 && len(parts[1]) == 32 && validTraceID(parts[1]) {
		return parts[1]
	}
	return ""
}

// TraceMiddleware 为看板请求分配 trace_id，写入 gin.Context、请求 ctx 和响应头
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := incomingTraceID(c)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
