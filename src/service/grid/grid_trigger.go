package grid

import (
	"log"
	"sync"

	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/service/exchange"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
)

// GridTrigger periodically enumerates active grids and evaluates each one
// once per sweep. A sweep that fires while the previous one is still running
// is skipped entirely, never queued.
type GridTrigger struct {
	GridRepository       repository.GridStorageInterface
	SettingsRepository   repository.SettingsProviderInterface
	PriceService         exchange.PriceOracleInterface
	Engine               DecisionProcessorInterface
	TimeService          utils.TimeServiceInterface
	IntervalMilliseconds int64

	sweepMutex sync.Mutex
}

func (t *GridTrigger) Run() {
	for {
		t.ProcessSweep()
		t.TimeService.WaitMilliseconds(t.IntervalMilliseconds)
	}
}

// ProcessSweep reports whether the sweep actually ran.
func (t *GridTrigger) ProcessSweep() bool {
	if !t.sweepMutex.TryLock() {
		return false
	}

	defer t.sweepMutex.Unlock()

	for _, state := range t.GridRepository.GetActiveGrids() {
		t.processGrid(state.WalletId, state.OrderId)
	}

	return true
}

// processGrid isolates one order's evaluation: a skip or failure here never
// prevents the remaining orders from being evaluated in the same sweep.
func (t *GridTrigger) processGrid(walletId string, orderId string) {
	settings := t.SettingsRepository.GetOrderSettings(walletId, orderId)

	if settings == nil {
		log.Printf("[%s/%s] Settings are not found, order skipped", walletId, orderId)
		return
	}

	price := t.PriceService.GetCurrentPrice(settings.Symbol())

	if price <= 0.00 {
		log.Printf("[%s] Price is unknown or expired, order skipped", settings.Symbol())
		return
	}

	_, err := t.Engine.ProcessTick(walletId, orderId, price, settings)

	if err != nil {
		log.Printf("[%s] Tick failed: %s", settings.Symbol(), err.Error())
	}
}
