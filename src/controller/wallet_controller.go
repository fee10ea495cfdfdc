package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/service/exchange"
)

type WalletController struct {
	CurrentWallet    *model.Wallet
	WalletRepository *repository.WalletRepository
	WalletService    *exchange.WalletService
}

func (c *WalletController) GetBalanceListAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != c.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	balances := c.WalletRepository.GetBalances(c.CurrentWallet.WalletUuid)

	encodedRes, _ := json.Marshal(balances)
	fmt.Fprintf(w, string(encodedRes))
}

func (c *WalletController) PutBalanceAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != c.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "PUT" {
		http.Error(w, "Only PUT method is allowed", http.StatusMethodNotAllowed)

		return
	}

	var balance model.Balance

	err := json.NewDecoder(req.Body).Decode(&balance)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if balance.Currency == "" {
		http.Error(w, "Currency is required", http.StatusBadRequest)

		return
	}

	if balance.Amount < 0.00 {
		http.Error(w, "Amount should not be negative", http.StatusBadRequest)

		return
	}

	err = c.WalletRepository.SetBalance(c.CurrentWallet.WalletUuid, balance.Currency, balance.Amount)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	c.WalletService.InvalidateBalanceCache(c.CurrentWallet.WalletUuid, balance.Currency)

	balances := c.WalletRepository.GetBalances(c.CurrentWallet.WalletUuid)

	encodedRes, _ := json.Marshal(balances)
	fmt.Fprintf(w, string(encodedRes))
}
