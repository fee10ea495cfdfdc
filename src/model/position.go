package model

const (
	PositionTypeBuy  = "BUY"
	PositionTypeSell = "SELL"
)

const (
	PositionStatusOpen      = "OPEN"
	PositionStatusClosed    = "CLOSED"
	PositionStatusCancelled = "CANCELLED"
)

type Position struct {
	Id          string  `json:"id"`
	WalletId    string  `json:"walletId"`
	OrderId     string  `json:"orderId"`
	Type        string  `json:"type"`
	EntryPrice  float64 `json:"entryPrice"`
	Value       float64 `json:"value"`
	Amount      float64 `json:"amount"`
	TrendAtOpen int64   `json:"trendAtOpen"`
	TargetPrice float64 `json:"targetPrice"`
	Status      string  `json:"status"`
	Profit      float64 `json:"profit"`
	OpenedAt    string  `json:"openedAt"`
	ClosedAt    *string `json:"closedAt"`
}

func (p *Position) IsBuy() bool {
	return p.Type == PositionTypeBuy
}

func (p *Position) IsSell() bool {
	return p.Type == PositionTypeSell
}

func (p *Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// TargetReached reports whether the close condition holds at the given price:
// a BUY leg closes at or above its target sell price, a SELL leg closes at
// or below its target buyback price.
func (p *Position) TargetReached(price float64) bool {
	if p.IsSell() {
		return p.TargetPrice >= price
	}

	return p.TargetPrice <= price
}
