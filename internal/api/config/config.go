package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 PULSE_* 可覆盖文件中的值
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return err
	}

	Cfg = cfg
	return nil
}

// Default 返回只包含默认值的配置，主要给测试使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, _ := decode(v)
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.read_timeout_ms", 200)
	v.SetDefault("redis.write_timeout_ms", 200)
	v.SetDefault("mongo.database", "pulse")
	v.SetDefault("mongo.max_pool_size", 50)
	v.SetDefault("mongo.timeout_seconds", 10)
	v.SetDefault("mongo.ensure_indexes", true)

	v.SetDefault("cache.namespace", "pulse")
	v.SetDefault("cache.metric_ttl", 600)
	v.SetDefault("cache.timeline_ttl", 300)
	v.SetDefault("cache.content_ttl", 300)
	v.SetDefault("cache.insight_ttl", 3600)

	v.SetDefault("insights.top_content_limit", 5)

	v.SetDefault("rollup.spec", "0 10 0 * * *")
	v.SetDefault("rollup.lock_ttl", 300)

	v.SetDefault("kafka_performance_consumer.topic", "content-performance")
	v.SetDefault("kafka_performance_consumer.group_id", "pulse-performance")
	v.SetDefault("kafka.client_id", "pulse")
	v.SetDefault("kafka.consumer.initial_offset", "newest")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
}
