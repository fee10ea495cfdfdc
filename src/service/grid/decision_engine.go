package grid

import (
	"errors"
	"fmt"
	"log"

	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/service/exchange"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

type DecisionProcessorInterface interface {
	ProcessTick(walletId string, orderId string, price float64, settings *model.OrderSettings) (*model.GridState, error)
}

// DecisionEngine evaluates one order against one price sample per tick.
// Every tick runs the same five steps in a fixed order: focus re-centering,
// buy entry, buy close sweep, short entry, short close sweep. Later steps see
// state mutated by earlier steps; the state is persisted once at the end.
type DecisionEngine struct {
	GridRepository repository.GridStorageInterface
	Ledger         PositionLedgerInterface
	Resolver       ThresholdResolverInterface
	Guard          CapacityGuardInterface
	Wallet         exchange.ExchangeAdapterInterface
	Formatter      *utils.Formatter
	TimeService    utils.TimeServiceInterface
}

func (e *DecisionEngine) Initialize(settings model.OrderSettings) (model.GridState, error) {
	now := e.TimeService.GetNowUnix()
	nowString := e.TimeService.GetNowDateTimeString()

	state := model.GridState{
		WalletId:          settings.WalletId,
		OrderId:           settings.OrderId,
		CurrentFocusPrice: settings.FocusPrice,
		FocusLastUpdated:  now,
		BuyPositionIds:    make(model.PositionIdList, 0),
		SellPositionIds:   make(model.PositionIdList, 0),
		IsActive:          false,
		CreatedAt:         nowString,
		UpdatedAt:         nowString,
	}

	state.NextBuyTarget = e.buyTarget(&settings, state.CurrentFocusPrice, 0)
	state.NextSellTarget = e.sellTarget(&settings, state.CurrentFocusPrice, 0)

	lastId, err := e.GridRepository.Create(state)

	if err != nil {
		return state, err
	}

	state.Id = *lastId

	return state, nil
}

func (e *DecisionEngine) Start(walletId string, orderId string) error {
	state, err := e.GridRepository.GetGridState(walletId, orderId)

	if err != nil {
		return err
	}

	state.IsActive = true
	state.UpdatedAt = e.TimeService.GetNowDateTimeString()

	return e.GridRepository.Update(state)
}

func (e *DecisionEngine) Stop(walletId string, orderId string) error {
	state, err := e.GridRepository.GetGridState(walletId, orderId)

	if err != nil {
		return err
	}

	state.IsActive = false
	state.UpdatedAt = e.TimeService.GetNowDateTimeString()

	return e.GridRepository.Update(state)
}

func (e *DecisionEngine) OpenPositions(walletId string, orderId string) ([]model.Position, error) {
	state, err := e.GridRepository.GetGridState(walletId, orderId)

	if err != nil {
		return nil, err
	}

	positions := e.Ledger.OpenBuyPositions(&state)
	positions = append(positions, e.Ledger.OpenSellPositions(&state)...)

	return positions, nil
}

func (e *DecisionEngine) ProcessTick(walletId string, orderId string, price float64, settings *model.OrderSettings) (*model.GridState, error) {
	if price <= 0.00 {
		return nil, errors.New(fmt.Sprintf("[%s] price is unknown", settings.Symbol()))
	}

	state, err := e.GridRepository.GetGridState(walletId, orderId)

	if err != nil {
		return nil, err
	}

	if !state.IsActive {
		return &state, nil
	}

	e.recenterFocus(&state, settings, price)
	e.tryOpenBuy(&state, settings, price)
	e.sweepBuyCloses(&state, settings, price)
	e.tryOpenSell(&state, settings, price)
	e.sweepSellCloses(&state, settings, price)

	state.LastKnownPrice = price
	state.LastPriceUpdate = e.TimeService.GetNowUnix()
	state.UpdatedAt = e.TimeService.GetNowDateTimeString()

	err = e.GridRepository.Update(state)

	if err != nil {
		return &state, err
	}

	return &state, nil
}

// recenterFocus resets the focus to the current price after a flat timeout:
// no open legs on either side and no focus move for longer than TimeToNewFocus.
func (e *DecisionEngine) recenterFocus(state *model.GridState, settings *model.OrderSettings, price float64) {
	if settings.TimeToNewFocus <= 0 {
		return
	}

	if !state.IsFlat() {
		return
	}

	if e.TimeService.GetNowDiffSeconds(state.FocusLastUpdated) <= settings.TimeToNewFocus {
		return
	}

	log.Printf("[%s] Focus timeout reached, re-centering %f -> %f", settings.Symbol(), state.CurrentFocusPrice, price)

	e.moveFocus(state, settings, price)
	state.NextSellTarget = e.sellTarget(settings, price, state.SellTrendCounter)
}

func (e *DecisionEngine) tryOpenBuy(state *model.GridState, settings *model.OrderSettings, price float64) {
	condition := settings.BuyCondition

	if condition.PriceThreshold > 0.00 && price > condition.PriceThreshold {
		if condition.CheckThresholdIfProfitable || state.TotalProfit <= 0.00 {
			return
		}
	}

	if price > state.NextBuyTarget {
		return
	}

	drop := -e.Formatter.SwingPercent(state.CurrentFocusPrice, price)
	minSwing := e.Resolver.MinSwing(settings, price, model.DirectionBuy)

	if minSwing.IsPositive() && drop < minSwing.Value() {
		return
	}

	value := e.transactionValue(settings, price, state.BuyTrendCounter, model.DirectionBuy)

	if !e.Guard.MeetsMinTransactionValue(settings, value) {
		return
	}

	expectedProfit := settings.GetMinProfitPercent().Of(value)

	if !e.Guard.FeeDoesNotEatProfit(settings, value, expectedProfit) {
		log.Printf("[%s] BUY suppressed, fee eats profit: value %f", settings.Symbol(), value)
		return
	}

	if err := e.Guard.CanBuy(settings, state, value); err != nil {
		log.Printf("[%s] BUY suppressed: %s", settings.Symbol(), err.Error())
		return
	}

	amount := e.Formatter.RoundDown(value/price, settings.AmountScale)

	if amount <= 0.00 {
		return
	}

	err := e.Wallet.ExecuteBuy(state.WalletId, settings.QuoteCurrency, settings.BaseCurrency, value, amount)

	if err != nil {
		log.Printf("[%s] BUY failed: %s", settings.Symbol(), err.Error())
		return
	}

	position := model.Position{
		Type:        model.PositionTypeBuy,
		EntryPrice:  price,
		Value:       value,
		Amount:      amount,
		TrendAtOpen: state.BuyTrendCounter,
		TargetPrice: e.Formatter.RoundUp(price*(100.00+settings.GetMinProfitPercent().Value())/100.00, settings.PriceScale),
	}

	positionId, err := e.Ledger.Open(state, position)

	if err != nil {
		log.Printf("[%s] BUY position can't be saved: %s", settings.Symbol(), err.Error())
		return
	}

	state.IncrementTrend(model.DirectionBuy)
	state.TotalBuyTransactions++
	state.TotalBoughtValue += value

	e.moveFocus(state, settings, price)

	log.Printf(
		"[%s] BUY opened [%s]: value %f, amount %f, target %f, trend %d",
		settings.Symbol(),
		positionId,
		value,
		amount,
		position.TargetPrice,
		state.BuyTrendCounter,
	)
}

func (e *DecisionEngine) sweepBuyCloses(state *model.GridState, settings *model.OrderSettings, price float64) {
	condition := settings.SellCondition

	if condition.PriceThreshold > 0.00 && price < condition.PriceThreshold {
		if condition.CheckThresholdIfProfitable || state.TotalProfit <= 0.00 {
			return
		}
	}

	for _, position := range e.Ledger.OpenBuyPositions(state) {
		// ascending targets: the first miss ends the sweep
		if !position.TargetReached(price) {
			break
		}

		exitValue := position.Amount * price

		if exitValue < position.Value {
			continue
		}

		err := e.Wallet.ExecuteSell(state.WalletId, settings.BaseCurrency, settings.QuoteCurrency, position.Amount, exitValue)

		if err != nil {
			log.Printf("[%s] SELL failed for position [%s]: %s", settings.Symbol(), position.Id, err.Error())
			continue
		}

		profit, err := e.Ledger.Close(state, position, price, exitValue)

		if err != nil {
			log.Printf("[%s] Position [%s] can't be closed: %s", settings.Symbol(), position.Id, err.Error())
			continue
		}

		state.DecrementTrend(model.DirectionBuy)
		state.TotalProfit += profit
		state.TotalSellTransactions++
		state.TotalSoldValue += exitValue

		e.moveFocus(state, settings, price)

		log.Printf(
			"[%s] BUY closed [%s]: profit %f, trend %d",
			settings.Symbol(),
			position.Id,
			profit,
			state.BuyTrendCounter,
		)
	}
}

func (e *DecisionEngine) tryOpenSell(state *model.GridState, settings *model.OrderSettings, price float64) {
	condition := settings.SellCondition

	if condition.PriceThreshold > 0.00 && price < condition.PriceThreshold {
		if condition.CheckThresholdIfProfitable || state.TotalProfit <= 0.00 {
			return
		}
	}

	if price < state.NextSellTarget {
		return
	}

	rise := e.Formatter.SwingPercent(state.CurrentFocusPrice, price)
	minSwing := e.Resolver.MinSwing(settings, price, model.DirectionSell)

	if minSwing.IsPositive() && rise < minSwing.Value() {
		return
	}

	value := e.transactionValue(settings, price, state.SellTrendCounter, model.DirectionSell)

	if !e.Guard.MeetsMinTransactionValue(settings, value) {
		return
	}

	expectedProfit := settings.GetMinProfitPercent().Of(value)

	if !e.Guard.FeeDoesNotEatProfit(settings, value, expectedProfit) {
		log.Printf("[%s] SELL suppressed, fee eats profit: value %f", settings.Symbol(), value)
		return
	}

	amount := e.Formatter.RoundDown(value/price, settings.AmountScale)

	if amount <= 0.00 {
		return
	}

	if err := e.Guard.CanSell(settings, state, amount, value); err != nil {
		log.Printf("[%s] SELL suppressed: %s", settings.Symbol(), err.Error())
		return
	}

	err := e.Wallet.ExecuteSell(state.WalletId, settings.BaseCurrency, settings.QuoteCurrency, amount, value)

	if err != nil {
		log.Printf("[%s] SELL failed: %s", settings.Symbol(), err.Error())
		return
	}

	position := model.Position{
		Type:        model.PositionTypeSell,
		EntryPrice:  price,
		Value:       value,
		Amount:      amount,
		TrendAtOpen: state.SellTrendCounter,
		TargetPrice: e.Formatter.RoundDown(price*(100.00-settings.GetMinProfitPercent().Value())/100.00, settings.PriceScale),
	}

	positionId, err := e.Ledger.Open(state, position)

	if err != nil {
		log.Printf("[%s] SELL position can't be saved: %s", settings.Symbol(), err.Error())
		return
	}

	state.IncrementTrend(model.DirectionSell)
	state.TotalSellTransactions++
	state.TotalSoldValue += value

	state.CurrentFocusPrice = price
	state.FocusLastUpdated = e.TimeService.GetNowUnix()
	state.NextSellTarget = e.sellTarget(settings, price, state.SellTrendCounter)

	log.Printf(
		"[%s] SELL opened [%s]: value %f, amount %f, buyback %f, trend %d",
		settings.Symbol(),
		positionId,
		value,
		amount,
		position.TargetPrice,
		state.SellTrendCounter,
	)
}

func (e *DecisionEngine) sweepSellCloses(state *model.GridState, settings *model.OrderSettings, price float64) {
	for _, position := range e.Ledger.OpenSellPositions(state) {
		if !position.TargetReached(price) {
			continue
		}

		exitValue := position.Amount * price

		if exitValue > position.Value {
			continue
		}

		err := e.Wallet.ExecuteBuy(state.WalletId, settings.QuoteCurrency, settings.BaseCurrency, exitValue, position.Amount)

		if err != nil {
			log.Printf("[%s] Buyback failed for position [%s]: %s", settings.Symbol(), position.Id, err.Error())
			continue
		}

		profit, err := e.Ledger.Close(state, position, price, exitValue)

		if err != nil {
			log.Printf("[%s] Position [%s] can't be closed: %s", settings.Symbol(), position.Id, err.Error())
			continue
		}

		state.DecrementTrend(model.DirectionSell)
		state.TotalProfit += profit
		state.TotalBuyTransactions++
		state.TotalBoughtValue += exitValue

		state.CurrentFocusPrice = price
		state.FocusLastUpdated = e.TimeService.GetNowUnix()
		state.NextSellTarget = e.sellTarget(settings, price, state.SellTrendCounter)

		log.Printf(
			"[%s] SELL closed [%s]: profit %f, trend %d",
			settings.Symbol(),
			position.Id,
			profit,
			state.SellTrendCounter,
		)
	}
}

// transactionValue is the per-transaction quote value for an entry at the
// current trend: min value per 1% of trend percent, raised by any matching
// additive bracket and clamped by any matching cap bracket.
func (e *DecisionEngine) transactionValue(settings *model.OrderSettings, price float64, trend int64, direction string) float64 {
	percent := e.Resolver.TrendPercent(settings, trend, direction)
	value := settings.GetCondition(direction).MinValuePerPercent * percent.Value()

	if addition := e.Resolver.BracketValue(settings.AdditiveValues, price); addition != nil {
		value += *addition
	}

	if limit := e.Resolver.BracketValue(settings.TransactionCaps, price); limit != nil && value > *limit {
		value = *limit
	}

	return value
}

func (e *DecisionEngine) moveFocus(state *model.GridState, settings *model.OrderSettings, price float64) {
	state.CurrentFocusPrice = price
	state.FocusLastUpdated = e.TimeService.GetNowUnix()
	state.NextBuyTarget = e.buyTarget(settings, price, state.BuyTrendCounter)
}

func (e *DecisionEngine) buyTarget(settings *model.OrderSettings, focus float64, trend int64) float64 {
	percent := e.Resolver.TrendPercent(settings, trend, model.DirectionBuy)

	return e.Formatter.RoundDown(focus*(100.00-percent.Value())/100.00, settings.PriceScale)
}

func (e *DecisionEngine) sellTarget(settings *model.OrderSettings, focus float64, trend int64) float64 {
	percent := e.Resolver.TrendPercent(settings, trend, model.DirectionSell)

	return e.Formatter.RoundUp(focus*(100.00+percent.Value())/100.00, settings.PriceScale)
}
