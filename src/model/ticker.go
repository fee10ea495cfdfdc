package model

const TickerTtlSeconds = 30

type TickerPrice struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

func (t TickerPrice) IsExpired(nowUnix int64) bool {
	return (nowUnix - t.Timestamp) > TickerTtlSeconds
}

type TickerEvent struct {
	Stream string      `json:"stream"`
	Ticker TickerPrice `json:"data"`
}
