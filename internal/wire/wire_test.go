package wire

import (
	"Pulse/internal/api/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheTTLs(t *testing.T) {
	ttl := CacheTTLs(config.CacheConfig{MetricTTL: 600, TimelineTTL: 300, ContentTTL: 120, InsightTTL: 3600})
	assert.Equal(t, 10*time.Minute, ttl.Metric)
	assert.Equal(t, 2*time.Minute, ttl.Content)
	assert.Equal(t, time.Hour, indexTTL(ttl))
}
