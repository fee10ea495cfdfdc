package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type SettingsProviderInterface interface {
	GetOrderSettings(walletId string, orderId string) *model.OrderSettings
}

type SettingsRepository struct {
	DB  *sql.DB
	RDB *redis.Client
	Ctx *context.Context
}

func (repo *SettingsRepository) getSettingsCacheKey(walletId string, orderId string) string {
	return fmt.Sprintf("order-settings-%s-%s", walletId, orderId)
}

func (repo *SettingsRepository) GetOrderSettings(walletId string, orderId string) *model.OrderSettings {
	cached := repo.RDB.Get(*repo.Ctx, repo.getSettingsCacheKey(walletId, orderId)).Val()
	if len(cached) > 0 {
		var dto model.OrderSettings
		err := json.Unmarshal([]byte(cached), &dto)

		if err == nil {
			return &dto
		}
	}

	settings, err := repo.findOrderSettings(walletId, orderId)

	if err != nil {
		return nil
	}

	encoded, err := json.Marshal(settings)
	if err == nil {
		repo.RDB.Set(*repo.Ctx, repo.getSettingsCacheKey(walletId, orderId), string(encoded), time.Second*30)
	}

	return &settings
}

func (repo *SettingsRepository) InvalidateSettingsCache(walletId string, orderId string) {
	repo.RDB.Del(*repo.Ctx, repo.getSettingsCacheKey(walletId, orderId))
}

func (repo *SettingsRepository) findOrderSettings(walletId string, orderId string) (model.OrderSettings, error) {
	var settings model.OrderSettings

	err := repo.DB.QueryRow(`
		SELECT
			os.id as Id,
			os.wallet_id as WalletId,
			os.order_id as OrderId,
			os.base_currency as BaseCurrency,
			os.quote_currency as QuoteCurrency,
			os.min_profit_percent as MinProfitPercent,
			os.focus_price as FocusPrice,
			os.time_to_new_focus as TimeToNewFocus,
			os.price_scale as PriceScale,
			os.amount_scale as AmountScale,
			os.fee_percent as FeePercent,
			os.min_transaction_value as MinTransactionValue,
			os.buy_policy as BuyPolicy,
			os.sell_policy as SellPolicy,
			os.buy_condition as BuyCondition,
			os.sell_condition as SellCondition,
			os.trend_percents as TrendPercents,
			os.additive_values as AdditiveValues,
			os.transaction_caps as TransactionCaps,
			os.buy_min_swings as BuyMinSwings,
			os.sell_min_swings as SellMinSwings
		FROM order_settings os
		WHERE os.wallet_id = ? AND os.order_id = ?`,
		walletId,
		orderId,
	).Scan(
		&settings.Id,
		&settings.WalletId,
		&settings.OrderId,
		&settings.BaseCurrency,
		&settings.QuoteCurrency,
		&settings.MinProfitPercent,
		&settings.FocusPrice,
		&settings.TimeToNewFocus,
		&settings.PriceScale,
		&settings.AmountScale,
		&settings.FeePercent,
		&settings.MinTransactionValue,
		&settings.BuyPolicy,
		&settings.SellPolicy,
		&settings.BuyCondition,
		&settings.SellCondition,
		&settings.TrendPercents,
		&settings.AdditiveValues,
		&settings.TransactionCaps,
		&settings.BuyMinSwings,
		&settings.SellMinSwings,
	)

	if err != nil {
		return settings, err
	}

	return settings, nil
}

func (repo *SettingsRepository) Create(settings model.OrderSettings) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO order_settings SET
			wallet_id = ?,
			order_id = ?,
			base_currency = ?,
			quote_currency = ?,
			min_profit_percent = ?,
			focus_price = ?,
			time_to_new_focus = ?,
			price_scale = ?,
			amount_scale = ?,
			fee_percent = ?,
			min_transaction_value = ?,
			buy_policy = ?,
			sell_policy = ?,
			buy_condition = ?,
			sell_condition = ?,
			trend_percents = ?,
			additive_values = ?,
			transaction_caps = ?,
			buy_min_swings = ?,
			sell_min_swings = ?
	`,
		settings.WalletId,
		settings.OrderId,
		settings.BaseCurrency,
		settings.QuoteCurrency,
		settings.MinProfitPercent,
		settings.FocusPrice,
		settings.TimeToNewFocus,
		settings.PriceScale,
		settings.AmountScale,
		settings.FeePercent,
		settings.MinTransactionValue,
		settings.BuyPolicy,
		settings.SellPolicy,
		settings.BuyCondition,
		settings.SellCondition,
		settings.TrendPercents,
		settings.AdditiveValues,
		settings.TransactionCaps,
		settings.BuyMinSwings,
		settings.SellMinSwings,
	)

	if err != nil {
		return nil, err
	}

	lastId, err := res.LastInsertId()

	return &lastId, err
}

func (repo *SettingsRepository) Update(settings model.OrderSettings) error {
	repo.InvalidateSettingsCache(settings.WalletId, settings.OrderId)

	_, err := repo.DB.Exec(`
		UPDATE order_settings os SET
			os.base_currency = ?,
			os.quote_currency = ?,
			os.min_profit_percent = ?,
			os.focus_price = ?,
			os.time_to_new_focus = ?,
			os.price_scale = ?,
			os.amount_scale = ?,
			os.fee_percent = ?,
			os.min_transaction_value = ?,
			os.buy_policy = ?,
			os.sell_policy = ?,
			os.buy_condition = ?,
			os.sell_condition = ?,
			os.trend_percents = ?,
			os.additive_values = ?,
			os.transaction_caps = ?,
			os.buy_min_swings = ?,
			os.sell_min_swings = ?
		WHERE os.wallet_id = ? AND os.order_id = ?
	`,
		settings.BaseCurrency,
		settings.QuoteCurrency,
		settings.MinProfitPercent,
		settings.FocusPrice,
		settings.TimeToNewFocus,
		settings.PriceScale,
		settings.AmountScale,
		settings.FeePercent,
		settings.MinTransactionValue,
		settings.BuyPolicy,
		settings.SellPolicy,
		settings.BuyCondition,
		settings.SellCondition,
		settings.TrendPercents,
		settings.AdditiveValues,
		settings.TransactionCaps,
		settings.BuyMinSwings,
		settings.SellMinSwings,
		settings.WalletId,
		settings.OrderId,
	)

	return err
}

func (repo *SettingsRepository) GetWalletSettingsList(walletId string) []model.OrderSettings {
	list := make([]model.OrderSettings, 0)

	res, err := repo.DB.Query(`
		SELECT
			os.id as Id,
			os.wallet_id as WalletId,
			os.order_id as OrderId,
			os.base_currency as BaseCurrency,
			os.quote_currency as QuoteCurrency,
			os.min_profit_percent as MinProfitPercent,
			os.focus_price as FocusPrice,
			os.time_to_new_focus as TimeToNewFocus,
			os.price_scale as PriceScale,
			os.amount_scale as AmountScale,
			os.fee_percent as FeePercent,
			os.min_transaction_value as MinTransactionValue,
			os.buy_policy as BuyPolicy,
			os.sell_policy as SellPolicy,
			os.buy_condition as BuyCondition,
			os.sell_condition as SellCondition,
			os.trend_percents as TrendPercents,
			os.additive_values as AdditiveValues,
			os.transaction_caps as TransactionCaps,
			os.buy_min_swings as BuyMinSwings,
			os.sell_min_swings as SellMinSwings
		FROM order_settings os
		WHERE os.wallet_id = ?`,
		walletId,
	)

	if err != nil {
		return list
	}

	defer res.Close()

	for res.Next() {
		var settings model.OrderSettings
		err := res.Scan(
			&settings.Id,
			&settings.WalletId,
			&settings.OrderId,
			&settings.BaseCurrency,
			&settings.QuoteCurrency,
			&settings.MinProfitPercent,
			&settings.FocusPrice,
			&settings.TimeToNewFocus,
			&settings.PriceScale,
			&settings.AmountScale,
			&settings.FeePercent,
			&settings.MinTransactionValue,
			&settings.BuyPolicy,
			&settings.SellPolicy,
			&settings.BuyCondition,
			&settings.SellCondition,
			&settings.TrendPercents,
			&settings.AdditiveValues,
			&settings.TransactionCaps,
			&settings.BuyMinSwings,
			&settings.SellMinSwings,
		)

		if err == nil {
			list = append(list, settings)
		}
	}

	return list
}
