package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName       string `mapstructure:"app_name"`
	Env           string `mapstructure:"app_env"`
	LogLevel      string `mapstructure:"log_level"`
	APIBaseURL    string `mapstructure:"api_base_url"`
	EndpointsFile string `mapstructure:"endpoints_file"`
	UserID        string `mapstructure:"user_id"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ReachabilityMode      string        `mapstructure:"reachability_mode"`
	ReachabilityHost      string        `mapstructure:"reachability_host"`
	ReachabilityURL       string        `mapstructure:"reachability_url"`
	ReachabilityTimeoutMs int64         `mapstructure:"reachability_timeout_ms"`
	ReachabilityTimeout   time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "samvad-friends-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "https://api.example.com")
	v.SetDefault("endpoints_file", "")
	v.SetDefault("user_id", "")
	v.SetDefault("request_timeout_seconds", 0) // transport default
	v.SetDefault("reachability_mode", "dns")
	v.SetDefault("reachability_host", "example.com")
	v.SetDefault("reachability_url", "")
	v.SetDefault("reachability_timeout_ms", 2000)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api_base_url %q (must be an absolute url)", cfg.APIBaseURL)
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	cfg.ReachabilityMode = strings.ToLower(strings.TrimSpace(cfg.ReachabilityMode))
	switch cfg.ReachabilityMode {
	case "dns", "none":
	case "http":
		if strings.TrimSpace(cfg.ReachabilityURL) == "" {
			return nil, fmt.Errorf("reachability_url is required when reachability_mode is http")
		}
	default:
		return nil, fmt.Errorf("invalid reachability_mode %q (expected dns, http or none)", cfg.ReachabilityMode)
	}

	if cfg.ReachabilityTimeoutMs <= 0 {
		return nil, fmt.Errorf("invalid reachability_timeout_ms (must be positive milliseconds)")
	}
	cfg.ReachabilityTimeout = time.Duration(cfg.ReachabilityTimeoutMs) * time.Millisecond

	return &cfg, nil
}
