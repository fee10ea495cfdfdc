package repository

import (
	"database/sql"
	"log"
	"strings"

	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type PositionStorageInterface interface {
	Create(position model.Position) error
	Update(position model.Position) error
	Find(id string) (model.Position, error)
	FindOpenByIds(ids model.PositionIdList) []model.Position
}

type PositionRepository struct {
	DB *sql.DB
}

func (repo *PositionRepository) Create(position model.Position) error {
	_, err := repo.DB.Exec(`
		INSERT INTO position SET
			id = ?,
			wallet_id = ?,
			order_id = ?,
			type = ?,
			entry_price = ?,
			value = ?,
			amount = ?,
			trend_at_open = ?,
			target_price = ?,
			status = ?,
			profit = ?,
			opened_at = ?,
			closed_at = ?
	`,
		position.Id,
		position.WalletId,
		position.OrderId,
		position.Type,
		position.EntryPrice,
		position.Value,
		position.Amount,
		position.TrendAtOpen,
		position.TargetPrice,
		position.Status,
		position.Profit,
		position.OpenedAt,
		position.ClosedAt,
	)

	if err != nil {
		log.Println(err)
	}

	return err
}

func (repo *PositionRepository) Update(position model.Position) error {
	_, err := repo.DB.Exec(`
		UPDATE position p SET
			p.status = ?,
			p.profit = ?,
			p.closed_at = ?
		WHERE p.id = ?
	`,
		position.Status,
		position.Profit,
		position.ClosedAt,
		position.Id,
	)

	if err != nil {
		log.Println(err)
	}

	return err
}

func (repo *PositionRepository) Find(id string) (model.Position, error) {
	var position model.Position

	err := repo.DB.QueryRow(`
		SELECT
			p.id as Id,
			p.wallet_id as WalletId,
			p.order_id as OrderId,
			p.type as Type,
			p.entry_price as EntryPrice,
			p.value as Value,
			p.amount as Amount,
			p.trend_at_open as TrendAtOpen,
			p.target_price as TargetPrice,
			p.status as Status,
			p.profit as Profit,
			p.opened_at as OpenedAt,
			p.closed_at as ClosedAt
		FROM position p
		WHERE p.id = ?`,
		id,
	).Scan(
		&position.Id,
		&position.WalletId,
		&position.OrderId,
		&position.Type,
		&position.EntryPrice,
		&position.Value,
		&position.Amount,
		&position.TrendAtOpen,
		&position.TargetPrice,
		&position.Status,
		&position.Profit,
		&position.OpenedAt,
		&position.ClosedAt,
	)

	if err != nil {
		return position, err
	}

	return position, nil
}

// FindOpenByIds resolves a grid's id list to its OPEN position records.
// Ids that no longer resolve to an open row are skipped.
func (repo *PositionRepository) FindOpenByIds(ids model.PositionIdList) []model.Position {
	list := make([]model.Position, 0)

	if len(ids) == 0 {
		return list
	}

	args := make([]interface{}, 0)
	args = append(args, model.PositionStatusOpen)
	for _, id := range ids {
		args = append(args, id)
	}

	res, err := repo.DB.Query(`
		SELECT
			p.id as Id,
			p.wallet_id as WalletId,
			p.order_id as OrderId,
			p.type as Type,
			p.entry_price as EntryPrice,
			p.value as Value,
			p.amount as Amount,
			p.trend_at_open as TrendAtOpen,
			p.target_price as TargetPrice,
			p.status as Status,
			p.profit as Profit,
			p.opened_at as OpenedAt,
			p.closed_at as ClosedAt
		FROM position p
		WHERE p.status = ? AND p.id IN (?`+strings.Repeat(", ?", len(ids)-1)+`)`,
		args...,
	)

	if err != nil {
		log.Println(err)
		return list
	}

	defer res.Close()

	for res.Next() {
		var position model.Position
		err := res.Scan(
			&position.Id,
			&position.WalletId,
			&position.OrderId,
			&position.Type,
			&position.EntryPrice,
			&position.Value,
			&position.Amount,
			&position.TrendAtOpen,
			&position.TargetPrice,
			&position.Status,
			&position.Profit,
			&position.OpenedAt,
			&position.ClosedAt,
		)

		if err == nil {
			list = append(list, position)
		}
	}

	return list
}
