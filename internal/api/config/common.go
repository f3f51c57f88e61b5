package config

// Config 配置主体
type Config struct {
	Server                   ServerConfig             `mapstructure:"server"`
	DB                       DBConfig                 `mapstructure:"database"`
	Redis                    RedisConfig              `mapstructure:"redis"`
	Mongo                    MongoConfig              `mapstructure:"mongo"`
	Kafka                    KafkaConfig              `mapstructure:"kafka"`
	KafkaPerformanceConsumer KafkaPerformanceConsumer `mapstructure:"kafka_performance_consumer"`
	Cache                    CacheConfig              `mapstructure:"cache"`
	Insights                 InsightsConfig           `mapstructure:"insights"`
	Rollup                   RollupConfig             `mapstructure:"rollup"`
	Logstash                 LogstashConfig           `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	// 缓存读写超时（毫秒），超时后按缓存不可用处理并直接回源
	ReadTimeoutMs  int `mapstructure:"read_timeout_ms"`
	WriteTimeoutMs int `mapstructure:"write_timeout_ms"`
}

type MongoConfig struct {
	URL            string `mapstructure:"url"`
	Database       string `mapstructure:"database"`
	MaxPoolSize    uint64 `mapstructure:"max_pool_size"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	EnsureIndexes  bool   `mapstructure:"ensure_indexes"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	ClientID string         `mapstructure:"client_id"`
	Version  string         `mapstructure:"version"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	// oldest 时新消费组从头回放历史快照，默认 newest
	InitialOffset string `mapstructure:"initial_offset"`
}

type KafkaPerformanceConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// CacheConfig 缓存命名空间与各读取形态的 TTL（秒）
type CacheConfig struct {
	Namespace   string `mapstructure:"namespace"`
	MetricTTL   int    `mapstructure:"metric_ttl"`
	TimelineTTL int    `mapstructure:"timeline_ttl"`
	ContentTTL  int    `mapstructure:"content_ttl"`
	InsightTTL  int    `mapstructure:"insight_ttl"`
}

type InsightsConfig struct {
	TopContentLimit int `mapstructure:"top_content_limit"`
}

// RollupConfig 每日汇总任务
type RollupConfig struct {
	Spec    string `mapstructure:"spec"`
	LockTTL int    `mapstructure:"lock_ttl"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
