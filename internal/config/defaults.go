package config

import "github.com/spf13/viper"

// 默认值与原始部署的 config.json 保持一致。
const (
	defaultAppLogLevel   = "info"
	defaultTimeframe     = "15m"
	defaultDays          = 3
	defaultTopN          = 20
	defaultBinanceREST   = "https://fapi.binance.com"
	defaultHTTPTimeout   = 15
	defaultQuoteAsset    = "USDT"
	defaultRequestsPerMn = 30
	defaultBaseDelaySec  = 0.5
	defaultMaxDelaySec   = 30.0
	defaultBackoffMult   = 2.0
	defaultCleanupDays   = 7
	defaultOutputDir     = "output"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", defaultAppLogLevel)
	v.SetDefault("app.log_path", "")

	v.SetDefault("screener.timeframe", defaultTimeframe)
	v.SetDefault("screener.days", defaultDays)
	v.SetDefault("screener.top_n", defaultTopN)

	v.SetDefault("binance.rest_base_url", defaultBinanceREST)
	v.SetDefault("binance.timeout_seconds", defaultHTTPTimeout)
	v.SetDefault("binance.quote_asset", defaultQuoteAsset)

	v.SetDefault("ratelimit.requests_per_minute", defaultRequestsPerMn)
	v.SetDefault("ratelimit.base_delay_seconds", defaultBaseDelaySec)
	v.SetDefault("ratelimit.max_delay_seconds", defaultMaxDelaySec)
	v.SetDefault("ratelimit.error_backoff_multiplier", defaultBackoffMult)

	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("discord.delete_files_after_upload", true)
	v.SetDefault("discord.cleanup_old_folders_days", defaultCleanupDays)

	v.SetDefault("output.dir", defaultOutputDir)
}
