package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

func newValidSettings() model.OrderSettings {
	return model.OrderSettings{
		WalletId:      "wallet-1",
		OrderId:       "order-1",
		BaseCurrency:  "BTC",
		QuoteCurrency: "USDT",
		FocusPrice:    94000.00,
		PriceScale:    1,
		AmountScale:   8,
		FeePercent:    0.10,
	}
}

func TestValidateAcceptsCompleteSettings(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	assertion.Nil(validator.Validate(newValidSettings()))
}

func TestValidateRejectsMissingIdentity(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	settings := newValidSettings()
	settings.OrderId = ""
	assertion.NotNil(validator.Validate(settings))

	settings = newValidSettings()
	settings.BaseCurrency = ""
	assertion.NotNil(validator.Validate(settings))
}

func TestValidateRejectsNonPositiveFocusPrice(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	settings := newValidSettings()
	settings.FocusPrice = 0.00
	assertion.NotNil(validator.Validate(settings))
}

func TestValidateRejectsUnknownPolicyMode(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	settings := newValidSettings()
	settings.SellPolicy.Mode = "unlimited"
	assertion.NotNil(validator.Validate(settings))
}

func TestValidateRejectsInvalidBracketCondition(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	settings := newValidSettings()
	settings.AdditiveValues = model.PriceBrackets{
		{Condition: "between", Price: 100.00, Value: 5.00},
	}
	assertion.NotNil(validator.Validate(settings))
}

func TestValidateRejectsEmptyRange(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	min := 100.00
	max := 100.00
	settings := newValidSettings()
	settings.BuyMinSwings = model.PriceBrackets{
		{MinPrice: &min, MaxPrice: &max, Value: 0.80},
	}
	assertion.NotNil(validator.Validate(settings))
}

func TestValidateRejectsOneSidedRange(t *testing.T) {
	assertion := assert.New(t)

	validator := OrderSettingsValidator{
		BracketTableValidator: &BracketTableValidator{},
	}

	min := 100.00
	settings := newValidSettings()
	settings.TransactionCaps = model.PriceBrackets{
		{MinPrice: &min, Value: 50.00},
	}
	assertion.NotNil(validator.Validate(settings))
}
