package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Notion    NotionConfig    `mapstructure:"notion"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// NotionConfig 노션 문서 저장소 연결 설정
type NotionConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	DatabaseID     string        `mapstructure:"database_id"`
	Version        string        `mapstructure:"version"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
}

// StorageConfig 파일 스테이징 설정. type 은 notion 또는 minio
type StorageConfig struct {
	Type          string `mapstructure:"type"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("ASTRO_CLASS")
	viper.AutomaticEnv()

	// Notion
	viper.BindEnv("notion.api_key", "NOTION_API_KEY")
	viper.BindEnv("notion.database_id", "DATABASE_ID")
	viper.BindEnv("notion.version", "NOTION_VERSION")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Notion.APIKey == "" {
		return nil, fmt.Errorf("notion.api_key is required")
	}
	if cfg.Notion.DatabaseID == "" {
		return nil, fmt.Errorf("notion.database_id is required")
	}
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = "2022-06-28"
	}
	if cfg.Notion.TimeoutSeconds <= 0 {
		cfg.Notion.TimeoutSeconds = 30
	}
	cfg.Notion.Timeout = time.Duration(cfg.Notion.TimeoutSeconds) * time.Second

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "notion"
	}

	return &cfg, nil
}
