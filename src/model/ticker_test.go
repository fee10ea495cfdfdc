package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickerPriceExpiry(t *testing.T) {
	assertion := assert.New(t)

	ticker := TickerPrice{
		Symbol:    "BTCUSDT",
		Price:     93500.00,
		Timestamp: 1700000000,
	}

	assertion.False(ticker.IsExpired(1700000000 + TickerTtlSeconds))
	assertion.True(ticker.IsExpired(1700000000 + TickerTtlSeconds + 1))
}
