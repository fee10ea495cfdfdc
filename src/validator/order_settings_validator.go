package validator

import (
	"errors"
	"fmt"
	"slices"

	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type OrderSettingsValidator struct {
	BracketTableValidator *BracketTableValidator
}

func (v *OrderSettingsValidator) Validate(settings model.OrderSettings) error {
	if settings.OrderId == "" {
		return errors.New("orderId is required")
	}

	if settings.BaseCurrency == "" || settings.QuoteCurrency == "" {
		return errors.New("baseCurrency and quoteCurrency are required")
	}

	if settings.FocusPrice <= 0.00 {
		return errors.New("focusPrice should be greater than zero")
	}

	if settings.PriceScale < 0 || settings.AmountScale < 0 {
		return errors.New("priceScale and amountScale should not be negative")
	}

	if settings.FeePercent.Lt(model.Percent(0.00)) {
		return errors.New("feePercent should not be negative")
	}

	validModes := []string{
		"",
		model.WalletPolicyModeOnlySold,
		model.WalletPolicyModeMaxDefined,
		model.WalletPolicyModeWalletLimit,
	}

	for _, direction := range []string{model.DirectionBuy, model.DirectionSell} {
		policy := settings.GetPolicy(direction)

		if !slices.Contains(validModes, policy.Mode) {
			return errors.New(fmt.Sprintf("%s wallet policy mode `%s` is invalid", direction, policy.Mode))
		}
	}

	for _, bracket := range settings.TrendPercents {
		if bracket.Trend < 0 {
			return errors.New("trendPercents trend should not be negative")
		}
	}

	bracketTables := map[string]model.PriceBrackets{
		"additiveValues":  settings.AdditiveValues,
		"transactionCaps": settings.TransactionCaps,
		"buyMinSwings":    settings.BuyMinSwings,
		"sellMinSwings":   settings.SellMinSwings,
	}

	for name, brackets := range bracketTables {
		violation := v.BracketTableValidator.Validate(name, brackets)

		if violation != nil {
			return violation
		}
	}

	return nil
}
