package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"screener/internal/market"
)

// Settings 描述计算指标所需的最小配置。
type Settings struct {
	SMAShort  int
	SMAMid    int
	SMALong   int
	ATRPeriod int
}

func (s Settings) withDefaults() Settings {
	if s.SMAShort <= 0 {
		s.SMAShort = 30
	}
	if s.SMAMid <= 0 {
		s.SMAMid = 45
	}
	if s.SMALong <= 0 {
		s.SMALong = 60
	}
	if s.ATRPeriod <= 0 {
		s.ATRPeriod = 14
	}
	return s
}

// Warmup 返回所有指标均有效的起始下标。调用方按此值多抓 K 线，
// 否则暖机裁剪会吃掉评分窗口。
// talib 的 SMA 前 period-1 个值、ATR 前 period 个值无意义。
func (s Settings) Warmup() int {
	final := s.withDefaults()
	w := final.SMALong - 1
	if final.ATRPeriod > w {
		w = final.ATRPeriod
	}
	return w
}

// Enrich 为 K 线窗口附加 SMA(short/mid/long) 与 ATR，返回可参与评分的
// Bar 序列（已去掉指标暖机段与非法数值）。
func Enrich(candles []market.Candle, cfg Settings) ([]market.Bar, error) {
	final := cfg.withDefaults()
	warm := final.Warmup()
	if len(candles) <= warm {
		return nil, fmt.Errorf("K 线数量不足以计算指标: %d <= %d", len(candles), warm)
	}

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	smaShort := talib.Sma(closes, final.SMAShort)
	smaMid := talib.Sma(closes, final.SMAMid)
	smaLong := talib.Sma(closes, final.SMALong)
	atr := talib.Atr(highs, lows, closes, final.ATRPeriod)

	out := make([]market.Bar, 0, len(candles)-warm)
	for i := warm; i < len(candles); i++ {
		bar := market.Bar{
			Candle: candles[i],
			SMA30:  smaShort[i],
			SMA45:  smaMid[i],
			SMA60:  smaLong[i],
			ATR:    atr[i],
		}
		if !bar.Valid() {
			continue
		}
		out = append(out, bar)
	}
	return out, nil
}
