package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Bybit     Bybit          `mapstructure:"bybit"`
	AI        AI             `mapstructure:"ai"`
	Report    Report         `mapstructure:"report"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Cache     Cache          `mapstructure:"cache"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Bybit struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	APISecret           string        `mapstructure:"api_secret"`
	Category            string        `mapstructure:"category"`
	RecvWindow          int           `mapstructure:"recv_window"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_min"`
	PageLimit           int           `mapstructure:"page_limit"`
	CacheExpiration     time.Duration `mapstructure:"cache_expiration"`
}

type AI struct {
	Provider   string       `mapstructure:"provider"` // "openrouter" or "gemini"
	OpenRouter OpenRouter   `mapstructure:"openrouter"`
	Gemini     GeminiConfig `mapstructure:"gemini"`
}

type OpenRouter struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	Temperature         float64       `mapstructure:"temperature"`
	MaxTokens           int           `mapstructure:"max_tokens"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_min"`
}

type GeminiConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_min"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

// Report holds the analytics policy knobs. TimeZone is the fixed reporting
// timezone used for all calendar bucketing, StandardRisk the default per-trade
// dollar risk unit, FullStopTolerance the band around StandardRisk within
// which a loss counts as a full stop.
type Report struct {
	TimeZone          string  `mapstructure:"time_zone"`
	StandardRisk      float64 `mapstructure:"standard_risk"`
	FullStopTolerance float64 `mapstructure:"full_stop_tolerance"`
	OnMalformed       string  `mapstructure:"on_malformed"` // "skip" or "abort"
	LookbackDays      int     `mapstructure:"lookback_days"`
	OutputDir         string  `mapstructure:"output_dir"`
}

type Scheduler struct {
	ReportCron      string        `mapstructure:"report_cron"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type TelegramConfig struct {
	BotToken                  string        `mapstructure:"bot_token"`
	ChatID                    string        `mapstructure:"chat_id"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
	MaxUserRequestPerSecond   int           `mapstructure:"max_user_request_per_second"`
	RatelimitExpireDuration   time.Duration `mapstructure:"ratelimit_expire_duration"`
	RateLimitCleanupDuration  time.Duration `mapstructure:"rate_limit_cleanup_duration"`
}

func Load() (*Config, error) {
	// Optional .env for local development, deployments use real env vars.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("bybit.base_url", "https://api.bybit.com")
	viper.SetDefault("bybit.category", "linear")
	viper.SetDefault("bybit.recv_window", 5000)
	viper.SetDefault("bybit.timeout", 30*time.Second)
	viper.SetDefault("bybit.max_request_per_min", 60)
	viper.SetDefault("bybit.page_limit", 100)
	viper.SetDefault("bybit.cache_expiration", 5*time.Minute)

	viper.SetDefault("ai.provider", "openrouter")
	viper.SetDefault("ai.openrouter.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("ai.openrouter.model", "x-ai/grok-4-fast:free")
	viper.SetDefault("ai.openrouter.temperature", 0.7)
	viper.SetDefault("ai.openrouter.max_tokens", 2000)
	viper.SetDefault("ai.openrouter.timeout", 60*time.Second)
	viper.SetDefault("ai.openrouter.max_request_per_min", 10)
	viper.SetDefault("ai.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("ai.gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.timeout", 60*time.Second)
	viper.SetDefault("ai.gemini.max_request_per_min", 10)
	viper.SetDefault("ai.gemini.max_token_per_minute", 1000000)

	viper.SetDefault("report.time_zone", "Asia/Bangkok")
	viper.SetDefault("report.standard_risk", 9.0)
	viper.SetDefault("report.full_stop_tolerance", 0.05)
	viper.SetDefault("report.on_malformed", "skip")
	viper.SetDefault("report.lookback_days", 7)
	viper.SetDefault("report.output_dir", "output")

	viper.SetDefault("scheduler.report_cron", "0 20 * * 5")
	viper.SetDefault("scheduler.timeout_duration", 10*time.Minute)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("telegram.timeout_duration", 10*time.Second)
	viper.SetDefault("telegram.max_global_request_per_second", 30)
	viper.SetDefault("telegram.max_user_request_per_second", 1)
	viper.SetDefault("telegram.ratelimit_expire_duration", 10*time.Minute)
	viper.SetDefault("telegram.rate_limit_cleanup_duration", 30*time.Minute)
}
