package model

import (
	"database/sql/driver"
	"encoding/json"
)

const MinProfitPercentFallback = 0.50

const (
	DirectionBuy  = "BUY"
	DirectionSell = "SELL"
)

const (
	WalletPolicyModeOnlySold    = "onlySold"
	WalletPolicyModeMaxDefined  = "maxDefined"
	WalletPolicyModeWalletLimit = "walletLimit"
)

type WalletPolicy struct {
	Mode      string  `json:"mode"`
	MaxValue  float64 `json:"maxValue"`
	AddProfit bool    `json:"addProfit"`
	Reserve   float64 `json:"reserve"`
}

func (w WalletPolicy) GetMode() string {
	if w.Mode == "" {
		return WalletPolicyModeWalletLimit
	}

	return w.Mode
}

func (w *WalletPolicy) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), &w)
}

func (w WalletPolicy) Value() (driver.Value, error) {
	jsonV, err := json.Marshal(w)
	return string(jsonV), err
}

type TriggerCondition struct {
	PriceThreshold             float64 `json:"priceThreshold"`
	CheckThresholdIfProfitable bool    `json:"checkThresholdIfProfitable"`
	MinValuePerPercent         float64 `json:"minValuePerPercent"`
}

func (t *TriggerCondition) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), &t)
}

func (t TriggerCondition) Value() (driver.Value, error) {
	jsonV, err := json.Marshal(t)
	return string(jsonV), err
}

type TrendBracket struct {
	Trend       int64   `json:"trend"`
	BuyPercent  Percent `json:"buyPercent"`
	SellPercent Percent `json:"sellPercent"`
}

func (t TrendBracket) GetPercent(direction string) Percent {
	if direction == DirectionSell {
		return t.SellPercent
	}

	return t.BuyPercent
}

type TrendBrackets []TrendBracket

func (t *TrendBrackets) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), &t)
}

func (t TrendBrackets) Value() (driver.Value, error) {
	jsonV, err := json.Marshal(t)
	return string(jsonV), err
}

const (
	BracketConditionLess         = "less"
	BracketConditionLessEqual    = "lessEqual"
	BracketConditionGreater      = "greater"
	BracketConditionGreaterEqual = "greaterEqual"
)

// PriceBracket is one entry of an ordered bracket table. The legacy form
// carries a single-sided condition against Price, the range form carries
// a [MinPrice, MaxPrice) half-open interval. Exactly one form is populated.
type PriceBracket struct {
	Condition string   `json:"condition,omitempty"`
	Price     float64  `json:"price,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Value     float64  `json:"value"`
}

func (b PriceBracket) IsRange() bool {
	return b.MinPrice != nil && b.MaxPrice != nil
}

func (b PriceBracket) Matches(price float64) bool {
	if b.IsRange() {
		return price >= *b.MinPrice && price < *b.MaxPrice
	}

	switch b.Condition {
	case BracketConditionLess:
		return price < b.Price
	case BracketConditionLessEqual:
		return price <= b.Price
	case BracketConditionGreater:
		return price > b.Price
	case BracketConditionGreaterEqual:
		return price >= b.Price
	}

	return false
}

type PriceBrackets []PriceBracket

// Match returns the first matching bracket in list order, nil when none match.
func (p PriceBrackets) Match(price float64) *PriceBracket {
	for _, bracket := range p {
		if bracket.Matches(price) {
			return &bracket
		}
	}

	return nil
}

func (p *PriceBrackets) Scan(src interface{}) error {
	return json.Unmarshal(src.([]byte), &p)
}

func (p PriceBrackets) Value() (driver.Value, error) {
	jsonV, err := json.Marshal(p)
	return string(jsonV), err
}

type OrderSettings struct {
	Id                  int64            `json:"id"`
	WalletId            string           `json:"walletId"`
	OrderId             string           `json:"orderId"`
	BaseCurrency        string           `json:"baseCurrency"`
	QuoteCurrency       string           `json:"quoteCurrency"`
	MinProfitPercent    Percent          `json:"minProfitPercent"`
	FocusPrice          float64          `json:"focusPrice"`
	TimeToNewFocus      int64            `json:"timeToNewFocus"`
	PriceScale          int              `json:"priceScale"`
	AmountScale         int              `json:"amountScale"`
	FeePercent          Percent          `json:"feePercent"`
	MinTransactionValue float64          `json:"minTransactionValue"`
	BuyPolicy           WalletPolicy     `json:"buyPolicy"`
	SellPolicy          WalletPolicy     `json:"sellPolicy"`
	BuyCondition        TriggerCondition `json:"buyCondition"`
	SellCondition       TriggerCondition `json:"sellCondition"`
	TrendPercents       TrendBrackets    `json:"trendPercents"`
	AdditiveValues      PriceBrackets    `json:"additiveValues"`
	TransactionCaps     PriceBrackets    `json:"transactionCaps"`
	BuyMinSwings        PriceBrackets    `json:"buyMinSwings"`
	SellMinSwings       PriceBrackets    `json:"sellMinSwings"`
}

func (s *OrderSettings) Symbol() string {
	return s.BaseCurrency + s.QuoteCurrency
}

func (s *OrderSettings) GetMinProfitPercent() Percent {
	if s.MinProfitPercent.IsPositive() {
		return s.MinProfitPercent
	}

	return Percent(MinProfitPercentFallback)
}

func (s *OrderSettings) GetCondition(direction string) TriggerCondition {
	if direction == DirectionSell {
		return s.SellCondition
	}

	return s.BuyCondition
}

func (s *OrderSettings) GetPolicy(direction string) WalletPolicy {
	if direction == DirectionSell {
		return s.SellPolicy
	}

	return s.BuyPolicy
}

func (s *OrderSettings) GetMinSwings(direction string) PriceBrackets {
	if direction == DirectionSell {
		return s.SellMinSwings
	}

	return s.BuyMinSwings
}
