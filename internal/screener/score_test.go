package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/internal/market"
)

func flatBar(openTime int64, closePrice float64) market.Bar {
	return market.Bar{
		Candle: market.Candle{OpenTime: openTime, Close: closePrice},
		SMA30:  closePrice,
		SMA45:  closePrice,
		SMA60:  closePrice,
		ATR:    1,
	}
}

func trendBar(openTime int64, closePrice float64) market.Bar {
	return market.Bar{
		Candle: market.Candle{OpenTime: openTime, Close: closePrice},
		SMA30:  closePrice * 0.95,
		SMA45:  closePrice * 0.9,
		SMA60:  closePrice * 0.85,
		ATR:    closePrice * 0.02,
	}
}

func TestScoreInsufficientData(t *testing.T) {
	window := []market.Bar{flatBar(1, 100), flatBar(2, 101)}
	_, err := Score(window, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestScoreDegenerateWindowIsZero(t *testing.T) {
	// 所有均线等于收盘价时六个差值两两抵消，分数精确为 0
	window := make([]market.Bar, 0, 5)
	for i, c := range []float64{1, 2, 3, 4, 5} {
		window = append(window, flatBar(int64(i+1), c))
	}
	score, err := Score(window, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestScoreIgnoresOlderPrefix(t *testing.T) {
	window := make([]market.Bar, 0, 10)
	for i := 0; i < 5; i++ {
		window = append(window, trendBar(int64(i+1), 100+float64(i)))
	}
	base, err := Score(window, 5)
	require.NoError(t, err)

	// 在窗口前面追加更旧的历史不应改变结果
	prefixed := append([]market.Bar{
		trendBar(-5, 50), trendBar(-4, 60), trendBar(-3, 70),
	}, window...)
	withPrefix, err := Score(prefixed, 5)
	require.NoError(t, err)
	assert.Equal(t, base, withPrefix)
}

func TestScoreMonotonicInLatestClose(t *testing.T) {
	build := func(lastClose float64) []market.Bar {
		window := make([]market.Bar, 0, 5)
		for i := 0; i < 4; i++ {
			window = append(window, trendBar(int64(i+1), 100))
		}
		last := trendBar(5, 100)
		last.Close = lastClose
		window = append(window, last)
		return window
	}

	low, err := Score(build(100), 5)
	require.NoError(t, err)
	high, err := Score(build(105), 5)
	require.NoError(t, err)
	assert.Greater(t, high, low)
}

func TestRecencyWeightHalfLife(t *testing.T) {
	// 窗口末端权重应是中点权重的两倍
	for _, length := range []int{10, 20, 96, 288} {
		wEnd := recencyWeight(length-1, length)
		wMid := recencyWeight(length/2-1, length)
		assert.InEpsilon(t, 2*wMid, wEnd, 1e-9, "length=%d", length)
	}
}

func TestScoreNormalizedByATR(t *testing.T) {
	calm := trendBar(1, 100)
	calm.ATR = 1
	volatile := trendBar(1, 100)
	volatile.ATR = 10

	calmScore, err := Score([]market.Bar{calm}, 1)
	require.NoError(t, err)
	volatileScore, err := Score([]market.Bar{volatile}, 1)
	require.NoError(t, err)
	assert.InEpsilon(t, calmScore/10, volatileScore, 1e-9)
}
