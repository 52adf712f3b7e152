package symbol

import "strings"

// ToExchange 规范化为 Binance 接口接受的形式（大写、去斜杠）。
func ToExchange(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "/", "")
}

// Display 返回展示用符号：去掉 USDT 后缀，其余报价币种（如 USDC）保留。
func Display(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasSuffix(s, "USDT") && len(s) > len("USDT") {
		return strings.TrimSuffix(s, "USDT")
	}
	return s
}

// TradingView 返回 TradingView watchlist 使用的合约标识，如 BINANCE:BTCUSDT.P。
func TradingView(s string) string {
	return "BINANCE:" + ToExchange(s) + ".P"
}

// TradingViewList 将排序后的符号列表转为逗号拼接的 watchlist 行。
func TradingViewList(symbols []string) string {
	if len(symbols) == 0 {
		return ""
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, TradingView(s))
	}
	return strings.Join(out, ",")
}
