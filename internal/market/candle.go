package market

import "math"

type Candle struct {
	OpenTime  int64   `json:"open_time"`
	CloseTime int64   `json:"close_time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	Trades    int64   `json:"trades"`
}

// Bar 在 Candle 基础上附加评分所需的均线与波动率指标。
type Bar struct {
	Candle
	SMA30 float64 `json:"sma_30"`
	SMA45 float64 `json:"sma_45"`
	SMA60 float64 `json:"sma_60"`
	ATR   float64 `json:"atr"`
}

// Valid 要求所有字段均为有限数值，否则该 Bar 不参与评分。
func (b Bar) Valid() bool {
	for _, v := range []float64{b.Close, b.SMA30, b.SMA45, b.SMA60, b.ATR} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.OpenTime > 0
}
