package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

func TestCanBuyWalletLimit(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
	}
	state := &model.GridState{WalletId: "wallet-1"}

	wallet.On("GetBalance", "wallet-1", "USDT").Return(500.00, nil)

	assertion.Nil(guard.CanBuy(settings, state, 500.00))
	assertion.NotNil(guard.CanBuy(settings, state, 500.01))
}

func TestCanBuyRespectsReserve(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		BuyPolicy: model.WalletPolicy{
			Reserve: 100.00,
		},
	}
	state := &model.GridState{WalletId: "wallet-1"}

	wallet.On("GetBalance", "wallet-1", "USDT").Return(500.00, nil)

	assertion.Nil(guard.CanBuy(settings, state, 400.00))
	assertion.NotNil(guard.CanBuy(settings, state, 400.01))
}

func TestCanBuyOnlySold(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		BuyPolicy: model.WalletPolicy{
			Mode: model.WalletPolicyModeOnlySold,
		},
	}
	state := &model.GridState{
		WalletId:         "wallet-1",
		TotalSoldValue:   300.00,
		TotalBoughtValue: 200.00,
		TotalProfit:      50.00,
	}

	wallet.On("GetBalance", "wallet-1", "USDT").Return(10000.00, nil)

	assertion.Nil(guard.CanBuy(settings, state, 100.00))
	assertion.NotNil(guard.CanBuy(settings, state, 100.01))

	settings.BuyPolicy.AddProfit = true
	assertion.Nil(guard.CanBuy(settings, state, 150.00))
	assertion.NotNil(guard.CanBuy(settings, state, 150.01))
}

func TestCanBuyMaxDefined(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		BuyPolicy: model.WalletPolicy{
			Mode:     model.WalletPolicyModeMaxDefined,
			MaxValue: 1000.00,
		},
	}
	state := &model.GridState{
		WalletId:         "wallet-1",
		TotalBoughtValue: 900.00,
		TotalProfit:      30.00,
	}

	wallet.On("GetBalance", "wallet-1", "USDT").Return(10000.00, nil)

	assertion.Nil(guard.CanBuy(settings, state, 100.00))
	assertion.NotNil(guard.CanBuy(settings, state, 100.01))

	settings.BuyPolicy.AddProfit = true
	assertion.Nil(guard.CanBuy(settings, state, 130.00))
	assertion.NotNil(guard.CanBuy(settings, state, 130.01))
}

func TestCanBuyBalanceFailure(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
	}
	state := &model.GridState{WalletId: "wallet-1"}

	wallet.On("GetBalance", "wallet-1", "USDT").Return(0.00, errors.New("balance is not available"))

	assertion.NotNil(guard.CanBuy(settings, state, 1.00))
}

func TestCanSellWalletLimit(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
	}
	state := &model.GridState{WalletId: "wallet-1"}

	wallet.On("GetBalance", "wallet-1", "BTC").Return(0.50, nil)

	assertion.Nil(guard.CanSell(settings, state, 0.50, 47000.00))
	assertion.NotNil(guard.CanSell(settings, state, 0.51, 47940.00))
}

func TestCanSellOnlySold(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	// the sell side mirrors the buy side: short exposure is funded by
	// previously bought value
	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		SellPolicy: model.WalletPolicy{
			Mode: model.WalletPolicyModeOnlySold,
		},
	}
	state := &model.GridState{
		WalletId:         "wallet-1",
		TotalBoughtValue: 300.00,
		TotalSoldValue:   250.00,
	}

	wallet.On("GetBalance", "wallet-1", "BTC").Return(10.00, nil)

	assertion.Nil(guard.CanSell(settings, state, 0.001, 50.00))
	assertion.NotNil(guard.CanSell(settings, state, 0.001, 50.01))
}

func TestCanSellMaxDefined(t *testing.T) {
	assertion := assert.New(t)

	wallet := new(ExchangeAdapterMock)
	guard := CapacityGuard{
		Wallet:    wallet,
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		SellPolicy: model.WalletPolicy{
			Mode:     model.WalletPolicyModeMaxDefined,
			MaxValue: 500.00,
		},
	}
	state := &model.GridState{
		WalletId:       "wallet-1",
		TotalSoldValue: 400.00,
	}

	wallet.On("GetBalance", "wallet-1", "BTC").Return(10.00, nil)

	assertion.Nil(guard.CanSell(settings, state, 0.001, 100.00))
	assertion.NotNil(guard.CanSell(settings, state, 0.001, 100.01))
}

func TestMeetsMinTransactionValue(t *testing.T) {
	assertion := assert.New(t)

	guard := CapacityGuard{
		Wallet:    new(ExchangeAdapterMock),
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{MinTransactionValue: 10.00}

	assertion.True(guard.MeetsMinTransactionValue(settings, 10.00))
	assertion.False(guard.MeetsMinTransactionValue(settings, 9.99))
}

func TestFeeDoesNotEatProfit(t *testing.T) {
	assertion := assert.New(t)

	guard := CapacityGuard{
		Wallet:    new(ExchangeAdapterMock),
		Formatter: &utils.Formatter{},
	}

	settings := &model.OrderSettings{FeePercent: 0.10}

	// round trip fee on 100.00 is 0.20
	assertion.True(guard.FeeDoesNotEatProfit(settings, 100.00, 0.21))
	assertion.False(guard.FeeDoesNotEatProfit(settings, 100.00, 0.20))
	assertion.False(guard.FeeDoesNotEatProfit(settings, 100.00, 0.19))
}

func TestFeeRoundsUpBeforeComparison(t *testing.T) {
	assertion := assert.New(t)

	guard := CapacityGuard{
		Wallet:    new(ExchangeAdapterMock),
		Formatter: &utils.Formatter{},
	}

	// 2 * 0.1% of 33.333333335 = 0.06666666667, rounded up at 8 decimals
	settings := &model.OrderSettings{FeePercent: 0.10}

	assertion.False(guard.FeeDoesNotEatProfit(settings, 33.333333335, 0.06666666))
	assertion.True(guard.FeeDoesNotEatProfit(settings, 33.333333335, 0.06666668))
}
