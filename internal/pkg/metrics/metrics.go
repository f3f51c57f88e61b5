// Package metrics 定义进程内的 Prometheus 指标，通过 /metrics 暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_cache_hits_total",
			Help: "Total number of cache-aside hits",
		},
		[]string{"kind"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_cache_misses_total",
			Help: "Total number of cache-aside misses",
		},
		[]string{"kind"},
	)

	// CacheErrors 缓存后端错误，op: get | set | remove | track | members
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_cache_errors_total",
			Help: "Total number of swallowed cache backend errors",
		},
		[]string{"kind", "op"},
	)

	InsightsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_insights_total",
			Help: "Insight snapshot requests by outcome",
		},
		[]string{"outcome"}, // existing | generated
	)

	IngestMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_ingest_messages_total",
			Help: "Content performance events consumed from kafka",
		},
		[]string{"result"}, // ok | invalid | failed
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
