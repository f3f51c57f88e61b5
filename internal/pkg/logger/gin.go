package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLog struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	TraceID string `json:"trace_id,omitempty"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Status  int    `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

// SetupGin 以 JSON 行格式输出访问日志，并启用 Recovery
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/metrics", "/api/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			entry := accessLog{
				Time:    p.TimeStamp.Format(time.RFC3339),
				Level:   "INFO",
				Msg:     "GIN_ACCESS",
				Method:  p.Method,
				Path:    p.Path,
				Status:  p.StatusCode,
				Latency: p.Latency.String(),
				Error:   p.ErrorMessage,
			}
			if id, ok := p.Keys[TraceIDKey].(string); ok {
				entry.TraceID = id
			} else if p.Request != nil {
				entry.TraceID = TraceID(p.Request.Context())
			}
			b, _ := json.Marshal(entry)
			return string(b) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
