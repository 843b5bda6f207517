package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Render   RenderConfig   `mapstructure:"render"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

// UpstreamConfig 图源服务配置
// UserAgent/Referer/Accept 只是兼容性伪装，上游全部拒绝时直接走失败路径，不做重试
type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	RelayURL  string        `mapstructure:"relay_url"` // 为空则不启用中转回退
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Referer   string        `mapstructure:"referer"`
	Accept    string        `mapstructure:"accept"`
}

type RenderConfig struct {
	ErrorImageURL string `mapstructure:"error_image_url"`
	CacheControl  string `mapstructure:"cache_control"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CARD")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 配置文件优先，没配置时读环境变量
	if cfg.Upstream.BaseURL == "" {
		if baseURL := os.Getenv("CARD_UPSTREAM_BASE_URL"); baseURL != "" {
			cfg.Upstream.BaseURL = baseURL
		}
	}

	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 5 * time.Second
	}
	if cfg.Render.CacheControl == "" {
		cfg.Render.CacheControl = "public, max-age=3600, s-maxage=3600"
	}

	return cfg, nil
}

func Get() *Config {
	return cfg
}
