package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

type PriceOracleInterface interface {
	GetCurrentPrice(symbol string) float64
}

// PriceService keeps the last ticker price per symbol. A zero return means
// the price is unknown or stale and the caller must skip its evaluation.
type PriceService struct {
	RDB         *redis.Client
	Ctx         *context.Context
	TimeService utils.TimeServiceInterface
}

func (p *PriceService) getTickerCacheKey(symbol string) string {
	return fmt.Sprintf("ticker-price-%s", symbol)
}

func (p *PriceService) SetTicker(ticker model.TickerPrice) {
	encoded, err := json.Marshal(ticker)

	if err != nil {
		return
	}

	p.RDB.Set(*p.Ctx, p.getTickerCacheKey(ticker.Symbol), string(encoded), time.Minute*5)
}

func (p *PriceService) GetCurrentPrice(symbol string) float64 {
	cached := p.RDB.Get(*p.Ctx, p.getTickerCacheKey(symbol)).Val()

	if len(cached) == 0 {
		return 0.00
	}

	var ticker model.TickerPrice
	err := json.Unmarshal([]byte(cached), &ticker)

	if err != nil {
		return 0.00
	}

	if ticker.IsExpired(p.TimeService.GetNowUnix()) {
		return 0.00
	}

	return ticker.Price
}
