package config

import (
	"fmt"
	"strings"

	"screener/internal/market"
)

// validate 对配置进行基础校验。
func validate(c *Config) error {
	if err := c.Screener.validate(); err != nil {
		return err
	}
	if err := c.RateLimit.validate(); err != nil {
		return err
	}
	if err := c.Discord.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}
	return nil
}

func (s *ScreenerConfig) validate() error {
	if _, err := market.ParseTimeframe(s.Timeframe); err != nil {
		return fmt.Errorf("screener.timeframe: %w", err)
	}
	if s.Days <= 0 {
		return fmt.Errorf("screener.days must be > 0")
	}
	if s.TopN <= 0 {
		return fmt.Errorf("screener.top_n must be > 0")
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if r.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be > 0")
	}
	if r.BaseDelaySeconds <= 0 {
		return fmt.Errorf("ratelimit.base_delay_seconds must be > 0")
	}
	if r.MaxDelaySeconds < r.BaseDelaySeconds {
		return fmt.Errorf("ratelimit.max_delay_seconds must be >= base_delay_seconds")
	}
	if r.ErrorBackoffMultiplier <= 1 {
		return fmt.Errorf("ratelimit.error_backoff_multiplier must be > 1")
	}
	return nil
}

func (d *DiscordConfig) validate() error {
	if d.Enabled && strings.TrimSpace(d.WebhookURL) == "" {
		return fmt.Errorf("discord.webhook_url is required when discord.enabled=true")
	}
	return nil
}
