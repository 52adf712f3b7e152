package market

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Timeframe 描述一个 K 线周期：内部 duration + 数据源 interval + 每日 bar 数。
type Timeframe struct {
	Key            string
	Duration       time.Duration
	SourceInterval string
	BarsPerDay     int
}

var supportedTimeframes = map[string]Timeframe{
	"5m":  {Key: "5m", Duration: 5 * time.Minute, SourceInterval: "5m", BarsPerDay: 12 * 24},
	"15m": {Key: "15m", Duration: 15 * time.Minute, SourceInterval: "15m", BarsPerDay: 4 * 24},
	"30m": {Key: "30m", Duration: 30 * time.Minute, SourceInterval: "30m", BarsPerDay: 2 * 24},
	"1h":  {Key: "1h", Duration: time.Hour, SourceInterval: "1h", BarsPerDay: 24},
	"2h":  {Key: "2h", Duration: 2 * time.Hour, SourceInterval: "2h", BarsPerDay: 12},
	"4h":  {Key: "4h", Duration: 4 * time.Hour, SourceInterval: "4h", BarsPerDay: 6},
	"8h":  {Key: "8h", Duration: 8 * time.Hour, SourceInterval: "8h", BarsPerDay: 3},
}

// ParseTimeframe 返回标准化周期定义。
func ParseTimeframe(input string) (Timeframe, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	tf, ok := supportedTimeframes[key]
	if !ok {
		return Timeframe{}, fmt.Errorf("不支持的周期: %s (可选: %s)", input, strings.Join(SupportedTimeframes(), ", "))
	}
	return tf, nil
}

// SupportedTimeframes 返回所有支持的 key（排序后）。
func SupportedTimeframes() []string {
	keys := make([]string, 0, len(supportedTimeframes))
	for k := range supportedTimeframes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RequiredBars 计算 days 天覆盖范围内应参与评分的 bar 数量。
func (tf Timeframe) RequiredBars(days int) int {
	if days <= 0 {
		return 0
	}
	return tf.BarsPerDay * days
}

// FetchWindow 计算抓取起止时间，起点预留 20% 余量以容忍数据源缺口。
func (tf Timeframe) FetchWindow(now time.Time, requiredBars int) (time.Time, time.Time) {
	span := time.Duration(float64(requiredBars) * float64(tf.Duration) * fetchBufferFactor)
	return now.Add(-span), now
}

// ExtendWindow 把抓取起点再前移 extraBars 根（带同样的缺口余量）。
// 指标暖机会裁掉窗口前段，余量只为容忍缺口，暖机段必须额外补足，
// 否则评分窗口永远凑不齐。
func (tf Timeframe) ExtendWindow(start time.Time, extraBars int) time.Time {
	if extraBars <= 0 {
		return start
	}
	span := time.Duration(float64(extraBars) * float64(tf.Duration) * fetchBufferFactor)
	return start.Add(-span)
}

const fetchBufferFactor = 1.2
