package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "BTC", Display("BTCUSDT"))
	assert.Equal(t, "SOLUSDC", Display("SOLUSDC"))
	assert.Equal(t, "USDT", Display("USDT"))
	assert.Equal(t, "ETH", Display(" ethusdt "))
}

func TestToExchange(t *testing.T) {
	assert.Equal(t, "ETHUSDT", ToExchange("eth/usdt"))
	assert.Equal(t, "BTCUSDT", ToExchange(" btcusdt "))
}

func TestTradingViewList(t *testing.T) {
	assert.Equal(t, "", TradingViewList(nil))
	assert.Equal(t,
		"BINANCE:BTCUSDT.P,BINANCE:ETHUSDT.P",
		TradingViewList([]string{"BTCUSDT", "ETHUSDT"}))
}
