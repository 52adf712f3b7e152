package screener

import (
	"errors"
	"fmt"
	"math"

	"screener/internal/market"
)

var (
	ErrInsufficientData  = errors.New("insufficient data")
	ErrWeightCalculation = errors.New("weight calculation error")
)

// ATR 为零时避免除零，用极小 epsilon 替代条件分支。
const atrEpsilon = 1e-19

// Score 将最近 requiredBars 根 Bar 归一为一个相对强度分数。
//
// 每根 bar 的分子是 close 与三条均线之间的六个两两差值之和，既包含价格
// 相对趋势的偏离，也包含均线的排列与发散；分母用 ATR 归一，让不同波动
// 率的标的可比。权重按 exp(k·i) 递增，k = 2·ln2/requiredBars，使窗口中点
// 的权重恰好是末端的一半。
func Score(window []market.Bar, requiredBars int) (float64, error) {
	if requiredBars <= 0 {
		return 0, fmt.Errorf("%w: requiredBars=%d", ErrInsufficientData, requiredBars)
	}
	if len(window) < requiredBars {
		return 0, fmt.Errorf("%w: %d < %d", ErrInsufficientData, len(window), requiredBars)
	}

	bars := window[len(window)-requiredBars:]
	var weighted, total float64
	for i, b := range bars {
		numerator := (b.Close - b.SMA30) +
			(b.Close - b.SMA45) +
			(b.Close - b.SMA60) +
			(b.SMA30 - b.SMA45) +
			(b.SMA30 - b.SMA60) +
			(b.SMA45 - b.SMA60)
		rs := numerator / (b.ATR + atrEpsilon)

		w := recencyWeight(i, requiredBars)
		weighted += rs * w
		total += w
	}

	// 指数权重恒为正，这里只是防御性兜底。
	if total <= 0 {
		return 0, ErrWeightCalculation
	}
	return weighted / total, nil
}

func recencyWeight(i, requiredBars int) float64 {
	k := 2 * math.Ln2 / float64(requiredBars)
	return math.Exp(k * float64(i))
}
