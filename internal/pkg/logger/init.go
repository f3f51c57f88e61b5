package logger

import (
	"Pulse/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

// LogWriter gin 访问日志的输出目标，连上 Logstash 时与业务日志共用一条连接
var LogWriter io.Writer = os.Stdout

// InitLogger 设置全局 slog：标准输出 JSON，配置了 Logstash 时额外转发带 trace_id 的记录
func InitLogger(cfg config.LogstashConfig) {
	opts := &log.HandlerOptions{Level: log.LevelInfo}
	var handler log.Handler = log.NewJSONHandler(os.Stdout, opts)

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err != nil {
			log.Warn("Logstash unreachable, logging to stdout only", "addr", cfg.Address, "err", err)
		} else {
			remote := log.NewJSONHandler(conn, opts).WithAttrs([]log.Attr{
				log.String("target_index", cfg.Index),
				log.String("log_token", cfg.Token),
			})
			handler = &TeeHandler{handlers: []log.Handler{handler, &TracedOnlyHandler{next: remote}}}
			LogWriter = io.MultiWriter(os.Stdout, conn)
		}
	}

	log.SetDefault(log.New(&ContextHandler{Handler: handler}))
}
