package app

import (
	"context"
	"time"

	"screener/internal/analysis/indicator"
	"screener/internal/gateway/binance"
	"screener/internal/market"
)

// barSource 组合行情网关与指标计算，满足 screener.BarSource。
type barSource struct {
	source   *binance.Source
	settings indicator.Settings
}

func (b barSource) FetchBars(ctx context.Context, symbol string, tf market.Timeframe, start, end time.Time) ([]market.Bar, error) {
	// 指标暖机段会被 Enrich 裁掉，起点必须相应前移，评分窗口才够数
	start = tf.ExtendWindow(start, b.settings.Warmup())
	candles, err := b.source.FetchKlines(ctx, symbol, tf, start, end)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, nil
	}
	return indicator.Enrich(candles, b.settings)
}
