package binance

import "time"

type Config struct {
	RESTBaseURL string
	HTTPTimeout time.Duration
	QuoteAsset  string
}

func (c Config) withDefaults() Config {
	if c.RESTBaseURL == "" {
		c.RESTBaseURL = "https://fapi.binance.com"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	if c.QuoteAsset == "" {
		c.QuoteAsset = "USDT"
	}
	return c
}
