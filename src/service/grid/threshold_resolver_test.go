package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

func TestTrendPercentStepFunction(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		TrendPercents: model.TrendBrackets{
			{Trend: 0, BuyPercent: 0.50, SellPercent: 0.60},
			{Trend: 3, BuyPercent: 0.75, SellPercent: 0.80},
			{Trend: 5, BuyPercent: 1.00, SellPercent: 1.20},
		},
	}

	assertion.Equal(model.Percent(0.50), resolver.TrendPercent(settings, 0, model.DirectionBuy))
	assertion.Equal(model.Percent(0.60), resolver.TrendPercent(settings, 0, model.DirectionSell))
	assertion.Equal(model.Percent(0.50), resolver.TrendPercent(settings, 2, model.DirectionBuy))
	assertion.Equal(model.Percent(0.75), resolver.TrendPercent(settings, 3, model.DirectionBuy))
	assertion.Equal(model.Percent(0.80), resolver.TrendPercent(settings, 4, model.DirectionSell))
	assertion.Equal(model.Percent(1.00), resolver.TrendPercent(settings, 5, model.DirectionBuy))
	assertion.Equal(model.Percent(1.20), resolver.TrendPercent(settings, 99, model.DirectionSell))
}

func TestTrendPercentOrderIndependent(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	settings := &model.OrderSettings{
		TrendPercents: model.TrendBrackets{
			{Trend: 5, BuyPercent: 1.00, SellPercent: 1.00},
			{Trend: 0, BuyPercent: 0.50, SellPercent: 0.50},
			{Trend: 3, BuyPercent: 0.75, SellPercent: 0.75},
		},
	}

	assertion.Equal(model.Percent(0.75), resolver.TrendPercent(settings, 4, model.DirectionBuy))
}

func TestTrendPercentFallsBackToMinProfit(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}

	settings := &model.OrderSettings{
		MinProfitPercent: 1.20,
	}
	assertion.Equal(model.Percent(1.20), resolver.TrendPercent(settings, 7, model.DirectionBuy))

	// no explicit min profit either
	settings = &model.OrderSettings{}
	assertion.Equal(model.Percent(model.MinProfitPercentFallback), resolver.TrendPercent(settings, 0, model.DirectionSell))
}

func TestTrendPercentIgnoresBracketsAboveCounter(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	settings := &model.OrderSettings{
		MinProfitPercent: 0.90,
		TrendPercents: model.TrendBrackets{
			{Trend: 10, BuyPercent: 2.00, SellPercent: 2.00},
		},
	}

	assertion.Equal(model.Percent(0.90), resolver.TrendPercent(settings, 9, model.DirectionBuy))
	assertion.Equal(model.Percent(2.00), resolver.TrendPercent(settings, 10, model.DirectionBuy))
}

func TestBracketValueLegacyConditions(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	table := model.PriceBrackets{
		{Condition: model.BracketConditionLess, Price: 50000.00, Value: 25.00},
		{Condition: model.BracketConditionGreaterEqual, Price: 90000.00, Value: 50.00},
	}

	value := resolver.BracketValue(table, 49999.99)
	assertion.NotNil(value)
	assertion.Equal(25.00, *value)

	value = resolver.BracketValue(table, 90000.00)
	assertion.NotNil(value)
	assertion.Equal(50.00, *value)

	assertion.Nil(resolver.BracketValue(table, 70000.00))
}

func TestBracketValueRangeForm(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	min := 50000.00
	max := 90000.00
	table := model.PriceBrackets{
		{MinPrice: &min, MaxPrice: &max, Value: 40.00},
	}

	// half-open interval: min inclusive, max exclusive
	assertion.Nil(resolver.BracketValue(table, 49999.99))

	value := resolver.BracketValue(table, 50000.00)
	assertion.NotNil(value)
	assertion.Equal(40.00, *value)

	value = resolver.BracketValue(table, 89999.99)
	assertion.NotNil(value)
	assertion.Equal(40.00, *value)

	assertion.Nil(resolver.BracketValue(table, 90000.00))
}

func TestBracketValueFirstMatchWins(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	table := model.PriceBrackets{
		{Condition: model.BracketConditionGreater, Price: 10000.00, Value: 10.00},
		{Condition: model.BracketConditionGreater, Price: 20000.00, Value: 20.00},
	}

	value := resolver.BracketValue(table, 30000.00)
	assertion.NotNil(value)
	assertion.Equal(10.00, *value)
}

func TestMinSwing(t *testing.T) {
	assertion := assert.New(t)

	resolver := ThresholdResolver{}
	settings := &model.OrderSettings{
		BuyMinSwings: model.PriceBrackets{
			{Condition: model.BracketConditionGreaterEqual, Price: 90000.00, Value: 0.80},
		},
	}

	assertion.Equal(model.Percent(0.80), resolver.MinSwing(settings, 93500.00, model.DirectionBuy))
	assertion.Equal(model.Percent(0.00), resolver.MinSwing(settings, 50000.00, model.DirectionBuy))
	assertion.Equal(model.Percent(0.00), resolver.MinSwing(settings, 93500.00, model.DirectionSell))
}
