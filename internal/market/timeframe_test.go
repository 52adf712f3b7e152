package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe(" 15M ")
	require.NoError(t, err)
	assert.Equal(t, "15m", tf.Key)
	assert.Equal(t, 96, tf.BarsPerDay)
	assert.Equal(t, 15*time.Minute, tf.Duration)

	for key, barsPerDay := range map[string]int{
		"5m": 288, "15m": 96, "30m": 48, "1h": 24, "2h": 12, "4h": 6, "8h": 3,
	} {
		tf, err := ParseTimeframe(key)
		require.NoError(t, err)
		assert.Equal(t, barsPerDay, tf.BarsPerDay, key)
	}
}

func TestParseTimeframeRejectsUnsupported(t *testing.T) {
	for _, key := range []string{"1d", "3m", "1w", ""} {
		_, err := ParseTimeframe(key)
		assert.Error(t, err, key)
	}
}

func TestRequiredBars(t *testing.T) {
	tf, err := ParseTimeframe("15m")
	require.NoError(t, err)
	assert.Equal(t, 288, tf.RequiredBars(3))
	assert.Equal(t, 0, tf.RequiredBars(0))
}

func TestFetchWindowHasBuffer(t *testing.T) {
	tf, err := ParseTimeframe("1h")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	start, end := tf.FetchWindow(now, 24)
	assert.Equal(t, now, end)
	// 24 根 1h bar 外加 20% 余量
	expectedSpan := time.Duration(float64(24*time.Hour) * 1.2)
	assert.Equal(t, now.Add(-expectedSpan), start)
}

func TestExtendWindowCoversExtraBars(t *testing.T) {
	tf, err := ParseTimeframe("15m")
	require.NoError(t, err)
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	extended := tf.ExtendWindow(start, 59)
	// 暖机段同样带 20% 余量前移
	expectedSpan := time.Duration(float64(59) * float64(15*time.Minute) * 1.2)
	assert.Equal(t, start.Add(-expectedSpan), extended)

	assert.Equal(t, start, tf.ExtendWindow(start, 0))
	assert.Equal(t, start, tf.ExtendWindow(start, -3))
}
