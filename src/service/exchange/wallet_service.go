package exchange

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
)

type ExchangeAdapterInterface interface {
	ExecuteBuy(walletId string, quoteCurrency string, baseCurrency string, quoteValue float64, baseAmount float64) error
	ExecuteSell(walletId string, baseCurrency string, quoteCurrency string, baseAmount float64, quoteValue float64) error
	GetBalance(walletId string, currency string) (float64, error)
}

// WalletService is the simulated exchange adapter: every fill settles
// instantly against wallet balances owned by the wallet storage.
type WalletService struct {
	WalletRepository repository.WalletStorageInterface
	RDB              *redis.Client
	Ctx              *context.Context
}

func (w *WalletService) getBalanceCacheKey(walletId string, currency string) string {
	return fmt.Sprintf("wallet-balance-%s-%s", walletId, currency)
}

func (w *WalletService) GetBalance(walletId string, currency string) (float64, error) {
	cached := w.RDB.Get(*w.Ctx, w.getBalanceCacheKey(walletId, currency)).Val()

	if len(cached) > 0 {
		balanceCached, err := strconv.ParseFloat(cached, 64)

		if err == nil {
			return balanceCached, nil
		}
	}

	balance, err := w.WalletRepository.GetBalance(walletId, currency)

	if err != nil {
		return 0.00, err
	}

	w.RDB.Set(*w.Ctx, w.getBalanceCacheKey(walletId, currency), balance, time.Minute)

	return balance, nil
}

func (w *WalletService) InvalidateBalanceCache(walletId string, currency string) {
	w.RDB.Del(*w.Ctx, w.getBalanceCacheKey(walletId, currency))
}

func (w *WalletService) ExecuteBuy(walletId string, quoteCurrency string, baseCurrency string, quoteValue float64, baseAmount float64) error {
	quoteBalance, err := w.WalletRepository.GetBalance(walletId, quoteCurrency)

	if err != nil {
		return err
	}

	if quoteBalance < quoteValue {
		return errors.New(fmt.Sprintf(
			"[%s] BUY not enough %s balance: %f/%f",
			walletId,
			quoteCurrency,
			quoteBalance,
			quoteValue,
		))
	}

	baseBalance, err := w.WalletRepository.GetBalance(walletId, baseCurrency)

	if err != nil {
		baseBalance = 0.00
	}

	err = w.WalletRepository.SetBalance(walletId, quoteCurrency, quoteBalance-quoteValue)
	if err != nil {
		return err
	}

	err = w.WalletRepository.SetBalance(walletId, baseCurrency, baseBalance+baseAmount)
	if err != nil {
		return err
	}

	w.InvalidateBalanceCache(walletId, quoteCurrency)
	w.InvalidateBalanceCache(walletId, baseCurrency)

	log.Printf("[%s] BUY executed: -%f %s, +%f %s", walletId, quoteValue, quoteCurrency, baseAmount, baseCurrency)

	return nil
}

func (w *WalletService) ExecuteSell(walletId string, baseCurrency string, quoteCurrency string, baseAmount float64, quoteValue float64) error {
	baseBalance, err := w.WalletRepository.GetBalance(walletId, baseCurrency)

	if err != nil {
		return err
	}

	if baseBalance < baseAmount {
		return errors.New(fmt.Sprintf(
			"[%s] SELL not enough %s balance: %f/%f",
			walletId,
			baseCurrency,
			baseBalance,
			baseAmount,
		))
	}

	quoteBalance, err := w.WalletRepository.GetBalance(walletId, quoteCurrency)

	if err != nil {
		quoteBalance = 0.00
	}

	err = w.WalletRepository.SetBalance(walletId, baseCurrency, baseBalance-baseAmount)
	if err != nil {
		return err
	}

	err = w.WalletRepository.SetBalance(walletId, quoteCurrency, quoteBalance+quoteValue)
	if err != nil {
		return err
	}

	w.InvalidateBalanceCache(walletId, baseCurrency)
	w.InvalidateBalanceCache(walletId, quoteCurrency)

	log.Printf("[%s] SELL executed: -%f %s, +%f %s", walletId, baseAmount, baseCurrency, quoteValue, quoteCurrency)

	return nil
}
