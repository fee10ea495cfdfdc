package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type GridStorageInterface interface {
	GetGridState(walletId string, orderId string) (model.GridState, error)
	Create(state model.GridState) (*int64, error)
	Update(state model.GridState) error
	GetActiveGrids() []model.GridState
}

type GridRepository struct {
	DB  *sql.DB
	RDB *redis.Client
	Ctx *context.Context
}

func (repo *GridRepository) getGridCacheKey(walletId string, orderId string) string {
	return fmt.Sprintf("grid-state-%s-%s", walletId, orderId)
}

func (repo *GridRepository) GetGridStateCached(walletId string, orderId string) *model.GridState {
	cached := repo.RDB.Get(*repo.Ctx, repo.getGridCacheKey(walletId, orderId)).Val()
	if len(cached) > 0 {
		var dto model.GridState
		err := json.Unmarshal([]byte(cached), &dto)

		if err == nil {
			return &dto
		}
	}

	state, err := repo.GetGridState(walletId, orderId)

	if err != nil {
		return nil
	}

	encoded, err := json.Marshal(state)
	if err == nil {
		repo.RDB.Set(*repo.Ctx, repo.getGridCacheKey(walletId, orderId), string(encoded), time.Second*30)
	}

	return &state
}

func (repo *GridRepository) DeleteGridStateCache(walletId string, orderId string) {
	repo.RDB.Del(*repo.Ctx, repo.getGridCacheKey(walletId, orderId))
}

func (repo *GridRepository) GetGridState(walletId string, orderId string) (model.GridState, error) {
	var state model.GridState

	err := repo.DB.QueryRow(`
		SELECT
			g.id as Id,
			g.wallet_id as WalletId,
			g.order_id as OrderId,
			g.current_focus_price as CurrentFocusPrice,
			g.focus_last_updated as FocusLastUpdated,
			g.buy_trend_counter as BuyTrendCounter,
			g.sell_trend_counter as SellTrendCounter,
			g.next_buy_target as NextBuyTarget,
			g.next_sell_target as NextSellTarget,
			g.buy_position_ids as BuyPositionIds,
			g.sell_position_ids as SellPositionIds,
			g.total_profit as TotalProfit,
			g.total_buy_transactions as TotalBuyTransactions,
			g.total_sell_transactions as TotalSellTransactions,
			g.total_bought_value as TotalBoughtValue,
			g.total_sold_value as TotalSoldValue,
			g.is_active as IsActive,
			g.last_known_price as LastKnownPrice,
			g.last_price_update as LastPriceUpdate,
			g.created_at as CreatedAt,
			g.updated_at as UpdatedAt
		FROM grid_state g
		WHERE g.wallet_id = ? AND g.order_id = ?`,
		walletId,
		orderId,
	).Scan(
		&state.Id,
		&state.WalletId,
		&state.OrderId,
		&state.CurrentFocusPrice,
		&state.FocusLastUpdated,
		&state.BuyTrendCounter,
		&state.SellTrendCounter,
		&state.NextBuyTarget,
		&state.NextSellTarget,
		&state.BuyPositionIds,
		&state.SellPositionIds,
		&state.TotalProfit,
		&state.TotalBuyTransactions,
		&state.TotalSellTransactions,
		&state.TotalBoughtValue,
		&state.TotalSoldValue,
		&state.IsActive,
		&state.LastKnownPrice,
		&state.LastPriceUpdate,
		&state.CreatedAt,
		&state.UpdatedAt,
	)

	if err != nil {
		return state, err
	}

	return state, nil
}

func (repo *GridRepository) Create(state model.GridState) (*int64, error) {
	res, err := repo.DB.Exec(`
		INSERT INTO grid_state SET
			wallet_id = ?,
			order_id = ?,
			current_focus_price = ?,
			focus_last_updated = ?,
			buy_trend_counter = ?,
			sell_trend_counter = ?,
			next_buy_target = ?,
			next_sell_target = ?,
			buy_position_ids = ?,
			sell_position_ids = ?,
			total_profit = ?,
			total_buy_transactions = ?,
			total_sell_transactions = ?,
			total_bought_value = ?,
			total_sold_value = ?,
			is_active = ?,
			last_known_price = ?,
			last_price_update = ?,
			created_at = ?,
			updated_at = ?
	`,
		state.WalletId,
		state.OrderId,
		state.CurrentFocusPrice,
		state.FocusLastUpdated,
		state.BuyTrendCounter,
		state.SellTrendCounter,
		state.NextBuyTarget,
		state.NextSellTarget,
		state.BuyPositionIds,
		state.SellPositionIds,
		state.TotalProfit,
		state.TotalBuyTransactions,
		state.TotalSellTransactions,
		state.TotalBoughtValue,
		state.TotalSoldValue,
		state.IsActive,
		state.LastKnownPrice,
		state.LastPriceUpdate,
		state.CreatedAt,
		state.UpdatedAt,
	)

	if err != nil {
		log.Println(err)

		return nil, err
	}

	lastId, err := res.LastInsertId()

	return &lastId, err
}

func (repo *GridRepository) Update(state model.GridState) error {
	repo.DeleteGridStateCache(state.WalletId, state.OrderId)

	_, err := repo.DB.Exec(`
		UPDATE grid_state g SET
			g.current_focus_price = ?,
			g.focus_last_updated = ?,
			g.buy_trend_counter = ?,
			g.sell_trend_counter = ?,
			g.next_buy_target = ?,
			g.next_sell_target = ?,
			g.buy_position_ids = ?,
			g.sell_position_ids = ?,
			g.total_profit = ?,
			g.total_buy_transactions = ?,
			g.total_sell_transactions = ?,
			g.total_bought_value = ?,
			g.total_sold_value = ?,
			g.is_active = ?,
			g.last_known_price = ?,
			g.last_price_update = ?,
			g.updated_at = ?
		WHERE g.wallet_id = ? AND g.order_id = ?
	`,
		state.CurrentFocusPrice,
		state.FocusLastUpdated,
		state.BuyTrendCounter,
		state.SellTrendCounter,
		state.NextBuyTarget,
		state.NextSellTarget,
		state.BuyPositionIds,
		state.SellPositionIds,
		state.TotalProfit,
		state.TotalBuyTransactions,
		state.TotalSellTransactions,
		state.TotalBoughtValue,
		state.TotalSoldValue,
		state.IsActive,
		state.LastKnownPrice,
		state.LastPriceUpdate,
		state.UpdatedAt,
		state.WalletId,
		state.OrderId,
	)

	if err != nil {
		log.Println(err)
		return err
	}

	return nil
}

func (repo *GridRepository) GetActiveGrids() []model.GridState {
	list := make([]model.GridState, 0)

	res, err := repo.DB.Query(`
		SELECT
			g.id as Id,
			g.wallet_id as WalletId,
			g.order_id as OrderId,
			g.current_focus_price as CurrentFocusPrice,
			g.focus_last_updated as FocusLastUpdated,
			g.buy_trend_counter as BuyTrendCounter,
			g.sell_trend_counter as SellTrendCounter,
			g.next_buy_target as NextBuyTarget,
			g.next_sell_target as NextSellTarget,
			g.buy_position_ids as BuyPositionIds,
			g.sell_position_ids as SellPositionIds,
			g.total_profit as TotalProfit,
			g.total_buy_transactions as TotalBuyTransactions,
			g.total_sell_transactions as TotalSellTransactions,
			g.total_bought_value as TotalBoughtValue,
			g.total_sold_value as TotalSoldValue,
			g.is_active as IsActive,
			g.last_known_price as LastKnownPrice,
			g.last_price_update as LastPriceUpdate,
			g.created_at as CreatedAt,
			g.updated_at as UpdatedAt
		FROM grid_state g
		WHERE g.is_active = 1`,
	)

	if err != nil {
		log.Println(err)
		return list
	}

	defer res.Close()

	for res.Next() {
		var state model.GridState
		err := res.Scan(
			&state.Id,
			&state.WalletId,
			&state.OrderId,
			&state.CurrentFocusPrice,
			&state.FocusLastUpdated,
			&state.BuyTrendCounter,
			&state.SellTrendCounter,
			&state.NextBuyTarget,
			&state.NextSellTarget,
			&state.BuyPositionIds,
			&state.SellPositionIds,
			&state.TotalProfit,
			&state.TotalBuyTransactions,
			&state.TotalSellTransactions,
			&state.TotalBoughtValue,
			&state.TotalSoldValue,
			&state.IsActive,
			&state.LastKnownPrice,
			&state.LastPriceUpdate,
			&state.CreatedAt,
			&state.UpdatedAt,
		)

		if err == nil {
			list = append(list, state)
		}
	}

	return list
}
