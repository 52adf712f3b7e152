package config

import "time"

// Config 是 screener 的主配置载体。
type Config struct {
	App       AppConfig       `toml:"app"`
	Screener  ScreenerConfig  `toml:"screener"`
	Binance   BinanceConfig   `toml:"binance"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Discord   DiscordConfig   `toml:"discord"`
	Output    OutputConfig    `toml:"output"`
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

type ScreenerConfig struct {
	Timeframe string `toml:"timeframe"`
	Days      int    `toml:"days"`
	TopN      int    `toml:"top_n"`
}

type BinanceConfig struct {
	RESTBaseURL    string `toml:"rest_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	QuoteAsset     string `toml:"quote_asset"`
}

func (b BinanceConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type RateLimitConfig struct {
	RequestsPerMinute      int     `toml:"requests_per_minute"`
	BaseDelaySeconds       float64 `toml:"base_delay_seconds"`
	MaxDelaySeconds        float64 `toml:"max_delay_seconds"`
	ErrorBackoffMultiplier float64 `toml:"error_backoff_multiplier"`
}

func (r RateLimitConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelaySeconds * float64(time.Second))
}

func (r RateLimitConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelaySeconds * float64(time.Second))
}

type DiscordConfig struct {
	Enabled                bool   `toml:"enabled"`
	WebhookURL             string `toml:"webhook_url"`
	DeleteFilesAfterUpload bool   `toml:"delete_files_after_upload"`
	CleanupOldFoldersDays  int    `toml:"cleanup_old_folders_days"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}
