package market

import "time"

// 最后一根 K 线收盘后的宽限：收盘时刻附近数据源可能还没定稿。
const defaultKlineGrace = 10 * time.Second

// DropUnclosedKline 裁掉仍在走的最后一根 K 线。评分只能用已收盘的
// bar，半根 K 线的 high/low/close 都会随行情继续变化。
// OpenTime 按毫秒时间戳解释。
func DropUnclosedKline(klines []Candle, interval time.Duration) []Candle {
	return dropUnclosedKlineAt(klines, interval, time.Now().UTC(), defaultKlineGrace)
}

func dropUnclosedKlineAt(klines []Candle, interval time.Duration, now time.Time, grace time.Duration) []Candle {
	if len(klines) == 0 || interval <= 0 {
		return klines
	}
	if grace < 0 {
		grace = 0
	}
	last := klines[len(klines)-1]
	if last.OpenTime <= 0 {
		return klines
	}
	closesAt := last.OpenTime + interval.Milliseconds() + grace.Milliseconds()
	if now.UnixMilli() < closesAt {
		return klines[:len(klines)-1]
	}
	return klines
}
