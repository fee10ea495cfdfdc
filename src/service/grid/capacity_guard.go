package grid

import (
	"errors"
	"fmt"

	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/service/exchange"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

type CapacityGuardInterface interface {
	CanBuy(settings *model.OrderSettings, state *model.GridState, value float64) error
	CanSell(settings *model.OrderSettings, state *model.GridState, amount float64, value float64) error
	MeetsMinTransactionValue(settings *model.OrderSettings, value float64) bool
	FeeDoesNotEatProfit(settings *model.OrderSettings, value float64, expectedProfit float64) bool
}

type CapacityGuard struct {
	Wallet    exchange.ExchangeAdapterInterface
	Formatter *utils.Formatter
}

func (g *CapacityGuard) CanBuy(settings *model.OrderSettings, state *model.GridState, value float64) error {
	policy := settings.BuyPolicy

	balance, err := g.Wallet.GetBalance(state.WalletId, settings.QuoteCurrency)

	if err != nil {
		return err
	}

	available := balance - policy.Reserve

	if value > available {
		return errors.New(fmt.Sprintf(
			"[%s] BUY not enough %s balance: %f/%f",
			settings.Symbol(),
			settings.QuoteCurrency,
			available,
			value,
		))
	}

	switch policy.GetMode() {
	case model.WalletPolicyModeOnlySold:
		allowed := state.TotalSoldValue - state.TotalBoughtValue
		if policy.AddProfit {
			allowed += state.TotalProfit
		}

		if value > allowed {
			return errors.New(fmt.Sprintf(
				"[%s] BUY capacity exceeded (onlySold): %f/%f",
				settings.Symbol(),
				allowed,
				value,
			))
		}
	case model.WalletPolicyModeMaxDefined:
		max := policy.MaxValue
		if policy.AddProfit {
			max += state.TotalProfit
		}

		if state.TotalBoughtValue+value > max {
			return errors.New(fmt.Sprintf(
				"[%s] BUY capacity exceeded (maxDefined): %f + %f > %f",
				settings.Symbol(),
				state.TotalBoughtValue,
				value,
				max,
			))
		}
	}

	return nil
}

func (g *CapacityGuard) CanSell(settings *model.OrderSettings, state *model.GridState, amount float64, value float64) error {
	policy := settings.SellPolicy

	balance, err := g.Wallet.GetBalance(state.WalletId, settings.BaseCurrency)

	if err != nil {
		return err
	}

	available := balance - policy.Reserve

	if amount > available {
		return errors.New(fmt.Sprintf(
			"[%s] SELL not enough %s balance: %f/%f",
			settings.Symbol(),
			settings.BaseCurrency,
			available,
			amount,
		))
	}

	switch policy.GetMode() {
	case model.WalletPolicyModeOnlySold:
		allowed := state.TotalBoughtValue - state.TotalSoldValue
		if policy.AddProfit {
			allowed += state.TotalProfit
		}

		if value > allowed {
			return errors.New(fmt.Sprintf(
				"[%s] SELL capacity exceeded (onlySold): %f/%f",
				settings.Symbol(),
				allowed,
				value,
			))
		}
	case model.WalletPolicyModeMaxDefined:
		max := policy.MaxValue
		if policy.AddProfit {
			max += state.TotalProfit
		}

		if state.TotalSoldValue+value > max {
			return errors.New(fmt.Sprintf(
				"[%s] SELL capacity exceeded (maxDefined): %f + %f > %f",
				settings.Symbol(),
				state.TotalSoldValue,
				value,
				max,
			))
		}
	}

	return nil
}

func (g *CapacityGuard) MeetsMinTransactionValue(settings *model.OrderSettings, value float64) bool {
	return value >= settings.MinTransactionValue
}

// FeeDoesNotEatProfit rejects an entry whose round-trip fee would not be
// strictly covered by the expected profit at target.
func (g *CapacityGuard) FeeDoesNotEatProfit(settings *model.OrderSettings, value float64, expectedProfit float64) bool {
	fee := g.Formatter.RoundUp(2.00*settings.FeePercent.Of(value), 8)

	return fee < expectedProfit
}
