package screener

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/internal/market"
)

// fakeLimiter 只记录调用序列，不做任何等待。
type fakeLimiter struct {
	mu        sync.Mutex
	waits     int
	errors    []string
	successes int
}

func (f *fakeLimiter) Wait() {
	f.mu.Lock()
	f.waits++
	f.mu.Unlock()
}

func (f *fakeLimiter) OnError(msg string) {
	f.mu.Lock()
	f.errors = append(f.errors, msg)
	f.mu.Unlock()
}

func (f *fakeLimiter) OnSuccess() {
	f.mu.Lock()
	f.successes++
	f.mu.Unlock()
}

// fakeSource 按符号返回预设的窗口、错误或 panic。
type fakeSource struct {
	bars   map[string][]market.Bar
	errs   map[string]error
	panics map[string]bool
	calls  []string
	onCall func(symbol string)
}

func (f *fakeSource) FetchBars(_ context.Context, symbol string, _ market.Timeframe, _, _ time.Time) ([]market.Bar, error) {
	f.calls = append(f.calls, symbol)
	if f.onCall != nil {
		f.onCall(symbol)
	}
	if f.panics[symbol] {
		panic("unexpected provider failure: " + symbol)
	}
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.bars[symbol], nil
}

func validWindow(n int) []market.Bar {
	out := make([]market.Bar, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, trendBar(int64(i+1), 100+float64(i)))
	}
	return out
}

func mustTimeframe(t *testing.T, key string) market.Timeframe {
	tf, err := market.ParseTimeframe(key)
	require.NoError(t, err)
	return tf
}

func TestRunIsolatesPerSymbolFailures(t *testing.T) {
	tf := mustTimeframe(t, "8h") // 3 bars/day
	symbols := []string{"AAAUSDT", "BBBUSDT", "CCCUSDT", "DDDUSDT", "EEEUSDT"}

	source := &fakeSource{
		bars: map[string][]market.Bar{
			"AAAUSDT": validWindow(3),
			"CCCUSDT": validWindow(3),
			"EEEUSDT": validWindow(3),
		},
		errs: map[string]error{
			"BBBUSDT": errors.New("read tcp: connection reset"),
			"DDDUSDT": errors.New("read tcp: connection reset"),
		},
	}
	limiter := &fakeLimiter{}
	runner := NewRunner(source, limiter)

	results := runner.Run(context.Background(), symbols, tf, 1)
	require.Len(t, results, 5)

	for i, res := range results {
		assert.Equal(t, symbols[i], res.Symbol)
	}
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.True(t, results[2].OK())
	assert.False(t, results[3].OK())
	assert.True(t, results[4].OK())

	assert.Equal(t, fetchFailureReason, results[1].Reason)
	assert.Equal(t, 5, limiter.waits)
	assert.Equal(t, 3, limiter.successes)
	assert.Len(t, limiter.errors, 2)
}

func TestRunEmptyDatasetIsFailure(t *testing.T) {
	tf := mustTimeframe(t, "8h")
	source := &fakeSource{bars: map[string][]market.Bar{}}
	limiter := &fakeLimiter{}
	runner := NewRunner(source, limiter)

	results := runner.Run(context.Background(), []string{"AAAUSDT"}, tf, 1)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Equal(t, fetchFailureReason, results[0].Reason)
	assert.Equal(t, []string{fetchFailureReason}, limiter.errors)
}

func TestRunInsufficientDataIsFailure(t *testing.T) {
	tf := mustTimeframe(t, "8h")
	source := &fakeSource{bars: map[string][]market.Bar{
		"AAAUSDT": validWindow(2), // 少于一天所需的 3 根
	}}
	limiter := &fakeLimiter{}
	runner := NewRunner(source, limiter)

	results := runner.Run(context.Background(), []string{"AAAUSDT"}, tf, 1)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.Contains(t, results[0].Reason, "insufficient data")
}

func TestRunRecoversPanics(t *testing.T) {
	tf := mustTimeframe(t, "8h")
	source := &fakeSource{
		bars:   map[string][]market.Bar{"AAAUSDT": validWindow(3), "CCCUSDT": validWindow(3)},
		panics: map[string]bool{"BBBUSDT": true},
	}
	limiter := &fakeLimiter{}
	runner := NewRunner(source, limiter)

	results := runner.Run(context.Background(), []string{"AAAUSDT", "BBBUSDT", "CCCUSDT"}, tf, 1)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Contains(t, results[1].Reason, "unexpected failure")
	assert.True(t, results[2].OK())
}

func TestRunStopsOnCancelWithPartialResults(t *testing.T) {
	tf := mustTimeframe(t, "8h")
	ctx, cancel := context.WithCancel(context.Background())
	source := &fakeSource{
		bars: map[string][]market.Bar{
			"AAAUSDT": validWindow(3),
			"BBBUSDT": validWindow(3),
			"CCCUSDT": validWindow(3),
		},
	}
	// 第二个符号处理完后触发中断
	source.onCall = func(symbol string) {
		if symbol == "BBBUSDT" {
			cancel()
		}
	}
	limiter := &fakeLimiter{}
	runner := NewRunner(source, limiter)

	results := runner.Run(ctx, []string{"AAAUSDT", "BBBUSDT", "CCCUSDT"}, tf, 1)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Equal(t, []string{"AAAUSDT", "BBBUSDT"}, source.calls)
}
