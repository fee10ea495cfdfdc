package model

type Wallet struct {
	Id         int64  `json:"id"`
	WalletUuid string `json:"walletUuid"`
	CreatedAt  string `json:"createdAt"`
}

type Balance struct {
	WalletId string  `json:"walletId"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}
