package config

import (
	"Fanscope/internal/platform"
	"time"
)

// Config 配置主体
type Config struct {
	Server              ServerConfig              `mapstructure:"server"`
	DB                  DBConfig                  `mapstructure:"database"`
	Redis               RedisConfig               `mapstructure:"redis"`
	Mongo               MongoConfig               `mapstructure:"mongo"`
	Elastic             ElasticConfig             `mapstructure:"elastic"`
	MinIO               MinIOConfig               `mapstructure:"minio"`
	LLM                 LLMConfig                 `mapstructure:"llm"`
	Logstash            LogstashConfig            `mapstructure:"logstash"`
	Kafka               KafkaConfig               `mapstructure:"kafka"`
	KafkaFetchConsumer  KafkaFetchConsumer        `mapstructure:"kafka_fetch_consumer"`
	KafkaNotifyConsumer KafkaNotifyConsumer       `mapstructure:"kafka_notify_consumer"`
	Platforms           map[string]PlatformConfig `mapstructure:"platforms"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
	// 面向终端用户的 API 限流
	APIRateLimit  int    `mapstructure:"api_rate_limit"`
	APIRateWindow int    `mapstructure:"api_rate_window"`
	APIRateAlgo   string `mapstructure:"api_rate_algorithm"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	SnapshotIndex string `mapstructure:"snapshot_index"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	ExportBucket     string `mapstructure:"export_bucket"`
	MediaBucket      string `mapstructure:"media_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

type LLMConfig struct {
	Enable bool   `mapstructure:"enable"`
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers     []string       `mapstructure:"brokers"`
	Sasl        SaslConfig     `mapstructure:"sasl"`
	Consumer    ConsumerConfig `mapstructure:"consumer"`
	FetchTopic  string         `mapstructure:"fetch_topic"`
	NotifyTopic string         `mapstructure:"notify_topic"`
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
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaFetchConsumer struct {
	GroupID string `mapstructure:"group_id"`
}

type KafkaNotifyConsumer struct {
	GroupID string `mapstructure:"group_id"`
}

// PlatformConfig 单个外部平台的接入配置
type PlatformConfig struct {
	BaseURL        string   `mapstructure:"base_url"`
	Token          string   `mapstructure:"token"`
	Timeout        int      `mapstructure:"timeout"`
	MaxRetries     int      `mapstructure:"max_retries"`
	BackoffMs      int      `mapstructure:"backoff_ms"`
	BackoffMaxMs   int      `mapstructure:"backoff_max_ms"`
	RateAlgorithm  string   `mapstructure:"rate_algorithm"`
	RateLimit      int      `mapstructure:"rate_limit"`
	RateWindow     int      `mapstructure:"rate_window"`
	MetricsTTLMin  int      `mapstructure:"metrics_ttl"`
	TrendingTTLMin int      `mapstructure:"trending_ttl"`
	UserAgents     []string `mapstructure:"user_agents"`
	Proxies        []string `mapstructure:"proxies"`
}

// ToClientConfig 转换为平台客户端配置，时间字段带单位
func (p PlatformConfig) ToClientConfig() platform.ClientConfig {
	return platform.ClientConfig{
		BaseURL:        p.BaseURL,
		Token:          p.Token,
		RequestTimeout: time.Duration(p.Timeout) * time.Second,
		MaxRetries:     p.MaxRetries,
		BackoffBase:    time.Duration(p.BackoffMs) * time.Millisecond,
		BackoffMax:     time.Duration(p.BackoffMaxMs) * time.Millisecond,
		RateAlgorithm:  p.RateAlgorithm,
		RateLimit:      p.RateLimit,
		RateWindow:     time.Duration(p.RateWindow) * time.Second,
		MetricsTTL:     time.Duration(p.MetricsTTLMin) * time.Minute,
		TrendingTTL:    time.Duration(p.TrendingTTLMin) * time.Minute,
		UserAgents:     p.UserAgents,
		Proxies:        p.Proxies,
	}
}
