package repository

import (
	"database/sql"
	"log"

	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type WalletStorageInterface interface {
	GetBalance(walletId string, currency string) (float64, error)
	SetBalance(walletId string, currency string, amount float64) error
}

type WalletRepository struct {
	DB *sql.DB
}

func (repo *WalletRepository) GetCurrentWallet(walletUuid string) *model.Wallet {
	var wallet model.Wallet

	err := repo.DB.QueryRow(`
		SELECT
			w.id as Id,
			w.wallet_uuid as WalletUuid,
			w.created_at as CreatedAt
		FROM wallet w
		WHERE w.wallet_uuid = ?`,
		walletUuid,
	).Scan(
		&wallet.Id,
		&wallet.WalletUuid,
		&wallet.CreatedAt,
	)

	if err != nil {
		return nil
	}

	return &wallet
}

func (repo *WalletRepository) CreateWallet(wallet model.Wallet) error {
	_, err := repo.DB.Exec(`
		INSERT INTO wallet SET
			wallet_uuid = ?,
			created_at = ?
	`,
		wallet.WalletUuid,
		wallet.CreatedAt,
	)

	if err != nil {
		log.Println(err)
	}

	return err
}

func (repo *WalletRepository) GetBalance(walletId string, currency string) (float64, error) {
	var amount float64

	err := repo.DB.QueryRow(`
		SELECT b.amount as Amount
		FROM wallet_balance b
		WHERE b.wallet_id = ? AND b.currency = ?`,
		walletId,
		currency,
	).Scan(&amount)

	if err != nil {
		return 0.00, err
	}

	return amount, nil
}

func (repo *WalletRepository) SetBalance(walletId string, currency string, amount float64) error {
	_, err := repo.DB.Exec(`
		INSERT INTO wallet_balance SET
			wallet_id = ?,
			currency = ?,
			amount = ?
		ON DUPLICATE KEY UPDATE amount = ?
	`,
		walletId,
		currency,
		amount,
		amount,
	)

	if err != nil {
		log.Println(err)
	}

	return err
}

func (repo *WalletRepository) GetBalances(walletId string) []model.Balance {
	list := make([]model.Balance, 0)

	res, err := repo.DB.Query(`
		SELECT
			b.wallet_id as WalletId,
			b.currency as Currency,
			b.amount as Amount
		FROM wallet_balance b
		WHERE b.wallet_id = ?`,
		walletId,
	)

	if err != nil {
		log.Println(err)
		return list
	}

	defer res.Close()

	for res.Next() {
		var balance model.Balance
		err := res.Scan(&balance.WalletId, &balance.Currency, &balance.Amount)

		if err == nil {
			list = append(list, balance)
		}
	}

	return list
}
