package screener

import (
	"context"
	"fmt"
	"time"

	"screener/internal/logger"
	"screener/internal/market"
)

const fetchFailureReason = "Failed to get data or empty dataset"

// BarSource 是唯一的入站数据依赖：返回带指标的 Bar 窗口。
type BarSource interface {
	FetchBars(ctx context.Context, symbol string, tf market.Timeframe, start, end time.Time) ([]market.Bar, error)
}

// RateLimiter 控制请求节奏并接收成功/失败信号。
type RateLimiter interface {
	Wait()
	OnError(msg string)
	OnSuccess()
}

// Runner 串行驱动整个符号列表：限频 → 抓取 → 评分，单个符号失败不会
// 中断整批（数据源限频按账号共享，并行抓取只会更快触发封禁）。
type Runner struct {
	source  BarSource
	limiter RateLimiter
	now     func() time.Time
}

func NewRunner(source BarSource, limiter RateLimiter) *Runner {
	return &Runner{source: source, limiter: limiter, now: time.Now}
}

// Run 逐个处理符号并返回全部结果；ctx 取消时停止发起新请求，
// 已收集的部分结果仍然有效。
func (r *Runner) Run(ctx context.Context, symbols []string, tf market.Timeframe, days int) []ScoreResult {
	requiredBars := tf.RequiredBars(days)
	results := make([]ScoreResult, 0, len(symbols))

	for i, sym := range symbols {
		select {
		case <-ctx.Done():
			logger.Warnf("收到中断信号，提前结束：已处理 %d/%d", len(results), len(symbols))
			return results
		default:
		}

		logger.Infof("处理 %d/%d: %s", i+1, len(symbols), sym)
		res := r.process(ctx, sym, tf, requiredBars)
		if res.OK() {
			logger.Infof("%s -> RS Score: %.6f", sym, res.Score)
		} else {
			logger.Warnf("%s -> 失败: %s", sym, res.Reason)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) process(ctx context.Context, sym string, tf market.Timeframe, requiredBars int) (res ScoreResult) {
	// 任何意外 panic 都折算成单符号失败，绝不中断整批。
	defer func() {
		if p := recover(); p != nil {
			msg := fmt.Sprintf("unexpected failure: %v", p)
			r.limiter.OnError(msg)
			res = ScoreResult{Symbol: sym, Reason: msg}
		}
	}()

	r.limiter.Wait()

	start, end := tf.FetchWindow(r.now(), requiredBars)
	bars, err := r.source.FetchBars(ctx, sym, tf, start, end)
	if err != nil || len(bars) == 0 {
		if err != nil {
			r.limiter.OnError(err.Error())
		} else {
			r.limiter.OnError(fetchFailureReason)
		}
		return ScoreResult{Symbol: sym, Reason: fetchFailureReason}
	}

	score, err := Score(bars, requiredBars)
	if err != nil {
		r.limiter.OnError(err.Error())
		return ScoreResult{Symbol: sym, Reason: err.Error()}
	}

	r.limiter.OnSuccess()
	return ScoreResult{Symbol: sym, Score: score}
}
