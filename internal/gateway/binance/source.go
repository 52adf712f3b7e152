package binance

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"screener/internal/market"
	symbolpkg "screener/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/futures"
)

const maxKlineLimit = 1500

// Source 基于 go-binance SDK 访问 Binance USDT 合约行情接口。
type Source struct {
	cfg    Config
	client *futures.Client
}

func New(cfg Config) *Source {
	final := cfg.withDefaults()
	client := futures.NewClient("", "")
	client.BaseURL = strings.TrimSpace(final.RESTBaseURL)
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Source{cfg: final, client: client}
}

// FetchKlines 抓取 [start, end] 区间的 K 线，并裁掉尚未收盘的最后一根。
// 单次请求最多返回 maxKlineLimit 根，区间更长时按 openTime 向前翻页，
// 直到拿齐整个区间；不翻页会丢掉最新的 K 线，评分窗口永远对不上。
func (s *Source) FetchKlines(ctx context.Context, symbol string, tf market.Timeframe, start, end time.Time) ([]market.Candle, error) {
	symbol = symbolpkg.ToExchange(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	endMs := end.UnixMilli()
	cursor := start.UnixMilli()
	var out []market.Candle
	for cursor <= endMs {
		kls, err := s.client.NewKlinesService().
			Symbol(symbol).
			Interval(tf.SourceInterval).
			StartTime(cursor).
			EndTime(endMs).
			Limit(maxKlineLimit).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		if len(kls) == 0 {
			break
		}

		for _, kl := range kls {
			if kl == nil {
				continue
			}
			out = append(out, market.Candle{
				OpenTime:  kl.OpenTime,
				CloseTime: kl.CloseTime,
				Open:      parseFloat(kl.Open),
				High:      parseFloat(kl.High),
				Low:       parseFloat(kl.Low),
				Close:     parseFloat(kl.Close),
				Volume:    parseFloat(kl.Volume),
				Trades:    kl.TradeNum,
			})
		}
		if len(kls) < maxKlineLimit {
			break
		}
		next := kls[len(kls)-1].OpenTime + tf.Duration.Milliseconds()
		if next <= cursor {
			break
		}
		cursor = next
	}
	return market.DropUnclosedKline(out, tf.Duration), nil
}

// ListSymbols 返回全部可交易的 USDT 本位永续合约符号（排序后）。
func (s *Source) ListSymbols(ctx context.Context) ([]string, error) {
	info, err := s.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取 exchange info 失败: %w", err)
	}
	out := make([]string, 0, len(info.Symbols))
	for _, sym := range info.Symbols {
		if sym.Status != "TRADING" {
			continue
		}
		if sym.ContractType != "PERPETUAL" {
			continue
		}
		if sym.QuoteAsset != s.cfg.QuoteAsset {
			continue
		}
		out = append(out, sym.Symbol)
	}
	sort.Strings(out)
	return out, nil
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
