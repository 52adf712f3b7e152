package ratelimit

import (
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"screener/internal/logger"
)

// 中文说明：
// 数据源的真实限频未知，只能通过错误响应探测。这里将保守的每分钟上限
// 与随错误递增、随成功递减的动态延迟结合，宁可降速也不要被封禁。

const (
	windowSpan         = time.Minute
	burstSpan          = 10 * time.Second
	maxBackoffExponent = 5
	burstHighCount     = 20
	burstLowCount      = 15
	burstHighFactor    = 1.5
	burstLowFactor     = 1.2
)

// rateLimitPhrases 命中任一短语即视为限频错误（大小写不敏感）。
var rateLimitPhrases = []string{"rate limit", "too many requests", "-1003"}

type Config struct {
	RequestsPerMinute      int
	BaseDelay              time.Duration
	MaxDelay               time.Duration
	ErrorBackoffMultiplier float64
}

func (c Config) withDefaults() Config {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = 30
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.ErrorBackoffMultiplier <= 1 {
		c.ErrorBackoffMultiplier = 2
	}
	return c
}

// Clock 抽象当前时间，便于测试注入假时钟。
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Limiter 串行调用方专用：批处理循环是单线程的，内部互斥锁只保证
// 误用时状态不被破坏，并不提供多 worker 下的公平排队。
type Limiter struct {
	mu     sync.Mutex
	cfg    Config
	clock  Clock
	sleep  func(time.Duration)
	jitter func() float64

	requests          []time.Time
	consecutiveErrors int
}

func New(cfg Config) *Limiter {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewWithClock(cfg, systemClock{}, time.Sleep, func() float64 {
		return 0.8 + rng.Float64()*0.4
	})
}

// NewWithClock 注入时钟、睡眠与抖动源，测试可据此消除真实等待。
func NewWithClock(cfg Config, clock Clock, sleep func(time.Duration), jitter func() float64) *Limiter {
	return &Limiter{
		cfg:    cfg.withDefaults(),
		clock:  clock,
		sleep:  sleep,
		jitter: jitter,
	}
}

// Wait 阻塞直到可以发起下一次请求，并记录本次请求时间。
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.prune(now)

	if len(l.requests) >= l.cfg.RequestsPerMinute {
		oldest := l.requests[0]
		wait := windowSpan - now.Sub(oldest) + time.Second
		if wait > 0 {
			logger.Debugf("限频窗口已满 (%d/%d)，等待 %s", len(l.requests), l.cfg.RequestsPerMinute, wait.Round(time.Millisecond))
			l.sleep(wait)
		}
		l.prune(l.clock.Now())
	}

	if delay := l.dynamicDelay(l.clock.Now()); delay > 0 {
		l.sleep(delay)
	}
	l.requests = append(l.requests, l.clock.Now())
}

// dynamicDelay 计算本次请求前的自适应延迟。
func (l *Limiter) dynamicDelay(now time.Time) time.Duration {
	delay := float64(l.cfg.BaseDelay)

	if l.consecutiveErrors > 0 {
		exp := l.consecutiveErrors
		if exp > maxBackoffExponent {
			exp = maxBackoffExponent
		}
		delay *= math.Pow(l.cfg.ErrorBackoffMultiplier, float64(exp))
	}

	recent := l.countSince(now.Add(-burstSpan))
	switch {
	case recent > burstHighCount:
		delay *= burstHighFactor
	case recent > burstLowCount:
		delay *= burstLowFactor
	}

	delay *= l.jitter()

	if ceiling := float64(l.cfg.MaxDelay); delay > ceiling {
		delay = ceiling
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}

// OnError 记录一次失败并立即执行同步惩罚等待。
func (l *Limiter) OnError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consecutiveErrors++
	n := l.consecutiveErrors

	if isRateLimitError(msg) {
		// 指数先截断再求幂，连续错误很大时 Pow 会溢出 Duration
		exp := n - 1
		if exp > maxBackoffExponent {
			exp = maxBackoffExponent
		}
		penalty := time.Duration(5*math.Pow(2, float64(exp))) * time.Second
		if penalty > windowSpan {
			penalty = windowSpan
		}
		logger.Warnf("命中限频错误 (连续 %d 次)，退避 %s: %s", n, penalty, msg)
		l.sleep(penalty)
		return
	}

	penalty := time.Duration(n) * time.Second
	if penalty > 10*time.Second {
		penalty = 10 * time.Second
	}
	logger.Debugf("API 错误 (连续 %d 次)，退避 %s", n, penalty)
	l.sleep(penalty)
}

// OnSuccess 让错误计数逐次回落，不会因单次成功立即恢复全速。
func (l *Limiter) OnSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.consecutiveErrors > 0 {
		l.consecutiveErrors--
	}
}

// ConsecutiveErrors 返回当前连续错误计数。
func (l *Limiter) ConsecutiveErrors() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.consecutiveErrors
}

func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-windowSpan)
	idx := 0
	for idx < len(l.requests) && !l.requests[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		l.requests = append(l.requests[:0], l.requests[idx:]...)
	}
}

func (l *Limiter) countSince(cutoff time.Time) int {
	n := 0
	for i := len(l.requests) - 1; i >= 0; i-- {
		if l.requests[i].Before(cutoff) {
			break
		}
		n++
	}
	return n
}

func isRateLimitError(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range rateLimitPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
