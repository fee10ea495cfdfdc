package grid

import (
	"sort"

	"github.com/google/uuid"
	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

type PositionLedgerInterface interface {
	Open(state *model.GridState, position model.Position) (string, error)
	Close(state *model.GridState, position model.Position, exitPrice float64, exitValue float64) (float64, error)
	OpenBuyPositions(state *model.GridState) []model.Position
	OpenSellPositions(state *model.GridState) []model.Position
}

// PositionLedger is the only writer of position records. The grid state owns
// its positions through the id lists; the ledger keeps both sides consistent.
type PositionLedger struct {
	PositionRepository repository.PositionStorageInterface
	TimeService        utils.TimeServiceInterface
}

func (l *PositionLedger) Open(state *model.GridState, position model.Position) (string, error) {
	position.Id = uuid.New().String()
	position.WalletId = state.WalletId
	position.OrderId = state.OrderId
	position.Status = model.PositionStatusOpen
	position.OpenedAt = l.TimeService.GetNowDateTimeString()

	err := l.PositionRepository.Create(position)

	if err != nil {
		return "", err
	}

	state.AttachPosition(position)

	return position.Id, nil
}

func (l *PositionLedger) Close(state *model.GridState, position model.Position, exitPrice float64, exitValue float64) (float64, error) {
	profit := exitValue - position.Value
	if position.IsSell() {
		profit = position.Value - exitValue
	}

	closedAt := l.TimeService.GetNowDateTimeString()
	position.Status = model.PositionStatusClosed
	position.Profit = profit
	position.ClosedAt = &closedAt

	err := l.PositionRepository.Update(position)

	if err != nil {
		return 0.00, err
	}

	state.DetachPosition(position)

	return profit, nil
}

// OpenBuyPositions returns the open BUY legs ordered by ascending target
// sell price, so the close sweep realizes the most certain profit first.
func (l *PositionLedger) OpenBuyPositions(state *model.GridState) []model.Position {
	positions := make([]model.Position, 0)

	for _, position := range l.PositionRepository.FindOpenByIds(state.BuyPositionIds) {
		if position.IsBuy() {
			positions = append(positions, position)
		}
	}

	sort.SliceStable(positions, func(i int, j int) bool {
		return positions[i].TargetPrice < positions[j].TargetPrice
	})

	return positions
}

func (l *PositionLedger) OpenSellPositions(state *model.GridState) []model.Position {
	positions := make([]model.Position, 0)

	for _, position := range l.PositionRepository.FindOpenByIds(state.SellPositionIds) {
		if position.IsSell() {
			positions = append(positions, position)
		}
	}

	return positions
}
