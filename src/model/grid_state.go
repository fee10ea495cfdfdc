package model

import (
	"database/sql/driver"
	"encoding/json"
)

type PositionIdList []string

// Scan tolerates malformed persisted lists: an undecodable column resets
// to an empty list instead of failing the row.
func (p *PositionIdList) Scan(src interface{}) error {
	*p = make(PositionIdList, 0)

	if src == nil {
		return nil
	}

	raw, ok := src.([]byte)
	if !ok {
		return nil
	}

	if err := json.Unmarshal(raw, p); err != nil {
		*p = make(PositionIdList, 0)
	}

	return nil
}

func (p PositionIdList) Value() (driver.Value, error) {
	if p == nil {
		p = make(PositionIdList, 0)
	}

	jsonV, err := json.Marshal(p)
	return string(jsonV), err
}

func (p PositionIdList) Contains(id string) bool {
	for _, item := range p {
		if item == id {
			return true
		}
	}

	return false
}

func (p PositionIdList) Without(id string) PositionIdList {
	result := make(PositionIdList, 0)

	for _, item := range p {
		if item != id {
			result = append(result, item)
		}
	}

	return result
}

type GridState struct {
	Id                    int64          `json:"id"`
	WalletId              string         `json:"walletId"`
	OrderId               string         `json:"orderId"`
	CurrentFocusPrice     float64        `json:"currentFocusPrice"`
	FocusLastUpdated      int64          `json:"focusLastUpdated"`
	BuyTrendCounter       int64          `json:"buyTrendCounter"`
	SellTrendCounter      int64          `json:"sellTrendCounter"`
	NextBuyTarget         float64        `json:"nextBuyTarget"`
	NextSellTarget        float64        `json:"nextSellTarget"`
	BuyPositionIds        PositionIdList `json:"buyPositionIds"`
	SellPositionIds       PositionIdList `json:"sellPositionIds"`
	TotalProfit           float64        `json:"totalProfit"`
	TotalBuyTransactions  int64          `json:"totalBuyTransactions"`
	TotalSellTransactions int64          `json:"totalSellTransactions"`
	TotalBoughtValue      float64        `json:"totalBoughtValue"`
	TotalSoldValue        float64        `json:"totalSoldValue"`
	IsActive              bool           `json:"isActive"`
	LastKnownPrice        float64        `json:"lastKnownPrice"`
	LastPriceUpdate       int64          `json:"lastPriceUpdate"`
	CreatedAt             string         `json:"createdAt"`
	UpdatedAt             string         `json:"updatedAt"`
}

func (g *GridState) AttachPosition(position Position) {
	if position.IsSell() {
		g.SellPositionIds = append(g.SellPositionIds, position.Id)
		return
	}

	g.BuyPositionIds = append(g.BuyPositionIds, position.Id)
}

func (g *GridState) DetachPosition(position Position) {
	if position.IsSell() {
		g.SellPositionIds = g.SellPositionIds.Without(position.Id)
		return
	}

	g.BuyPositionIds = g.BuyPositionIds.Without(position.Id)
}

func (g *GridState) IsFlat() bool {
	return g.BuyTrendCounter == 0 && g.SellTrendCounter == 0
}

// DecrementTrend never takes a counter below zero.
func (g *GridState) DecrementTrend(direction string) {
	if direction == DirectionSell {
		if g.SellTrendCounter > 0 {
			g.SellTrendCounter--
		}
		return
	}

	if g.BuyTrendCounter > 0 {
		g.BuyTrendCounter--
	}
}

func (g *GridState) IncrementTrend(direction string) {
	if direction == DirectionSell {
		g.SellTrendCounter++
		return
	}

	g.BuyTrendCounter++
}

func (g *GridState) GetTrendCounter(direction string) int64 {
	if direction == DirectionSell {
		return g.SellTrendCounter
	}

	return g.BuyTrendCounter
}
