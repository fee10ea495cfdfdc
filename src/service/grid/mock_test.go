package grid

import (
	"errors"

	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

type TimeServiceMock struct {
	mock.Mock
}

func (t *TimeServiceMock) WaitMilliseconds(milliseconds int64) {
	_ = t.Called(milliseconds)
}
func (t *TimeServiceMock) GetNowUnix() int64 {
	args := t.Called()
	return args.Get(0).(int64)
}
func (t *TimeServiceMock) GetNowDateTimeString() string {
	args := t.Called()
	return args.String(0)
}
func (t *TimeServiceMock) GetNowDiffSeconds(unixTime int64) int64 {
	args := t.Called(unixTime)
	return args.Get(0).(int64)
}

type ExchangeAdapterMock struct {
	mock.Mock
}

func (e *ExchangeAdapterMock) ExecuteBuy(walletId string, quoteCurrency string, baseCurrency string, quoteValue float64, baseAmount float64) error {
	args := e.Called(walletId, quoteCurrency, baseCurrency, quoteValue, baseAmount)
	return args.Error(0)
}
func (e *ExchangeAdapterMock) ExecuteSell(walletId string, baseCurrency string, quoteCurrency string, baseAmount float64, quoteValue float64) error {
	args := e.Called(walletId, baseCurrency, quoteCurrency, baseAmount, quoteValue)
	return args.Error(0)
}
func (e *ExchangeAdapterMock) GetBalance(walletId string, currency string) (float64, error) {
	args := e.Called(walletId, currency)
	return args.Get(0).(float64), args.Error(1)
}

type SettingsProviderMock struct {
	mock.Mock
}

func (s *SettingsProviderMock) GetOrderSettings(walletId string, orderId string) *model.OrderSettings {
	args := s.Called(walletId, orderId)

	settings := args.Get(0)
	if settings == nil {
		return nil
	}

	return settings.(*model.OrderSettings)
}

type PriceOracleMock struct {
	mock.Mock
}

func (p *PriceOracleMock) GetCurrentPrice(symbol string) float64 {
	args := p.Called(symbol)
	return args.Get(0).(float64)
}

type DecisionProcessorMock struct {
	mock.Mock
}

func (d *DecisionProcessorMock) ProcessTick(walletId string, orderId string, price float64, settings *model.OrderSettings) (*model.GridState, error) {
	args := d.Called(walletId, orderId, price, settings)

	state := args.Get(0)
	if state == nil {
		return nil, args.Error(1)
	}

	return state.(*model.GridState), args.Error(1)
}

type GridStorageMock struct {
	mock.Mock
}

func (g *GridStorageMock) GetGridState(walletId string, orderId string) (model.GridState, error) {
	args := g.Called(walletId, orderId)
	return args.Get(0).(model.GridState), args.Error(1)
}
func (g *GridStorageMock) Create(state model.GridState) (*int64, error) {
	args := g.Called(state)
	return args.Get(0).(*int64), args.Error(1)
}
func (g *GridStorageMock) Update(state model.GridState) error {
	args := g.Called(state)
	return args.Error(0)
}
func (g *GridStorageMock) GetActiveGrids() []model.GridState {
	args := g.Called()
	return args.Get(0).([]model.GridState)
}

// gridStorageStub keeps one grid state in memory so multi-tick scenarios see
// their own writes back.
type gridStorageStub struct {
	state      model.GridState
	hasState   bool
	lastId     int64
	failUpdate bool
}

func (g *gridStorageStub) GetGridState(walletId string, orderId string) (model.GridState, error) {
	if !g.hasState {
		return model.GridState{}, errors.New("grid state is not found")
	}

	return g.state, nil
}
func (g *gridStorageStub) Create(state model.GridState) (*int64, error) {
	g.lastId++
	state.Id = g.lastId
	g.state = state
	g.hasState = true

	return &g.lastId, nil
}
func (g *gridStorageStub) Update(state model.GridState) error {
	if g.failUpdate {
		return errors.New("grid state can't be updated")
	}

	g.state = state
	g.hasState = true

	return nil
}
func (g *gridStorageStub) GetActiveGrids() []model.GridState {
	if g.hasState && g.state.IsActive {
		return []model.GridState{g.state}
	}

	return []model.GridState{}
}

// positionStorageStub is an in-memory position table.
type positionStorageStub struct {
	positions  map[string]model.Position
	order      []string
	failCreate bool
	failUpdate bool
}

func newPositionStorageStub() *positionStorageStub {
	return &positionStorageStub{
		positions: make(map[string]model.Position),
		order:     make([]string, 0),
	}
}

func (p *positionStorageStub) Create(position model.Position) error {
	if p.failCreate {
		return errors.New("position can't be saved")
	}

	p.positions[position.Id] = position
	p.order = append(p.order, position.Id)

	return nil
}
func (p *positionStorageStub) Update(position model.Position) error {
	if p.failUpdate {
		return errors.New("position can't be updated")
	}

	stored, ok := p.positions[position.Id]
	if !ok {
		return errors.New("position is not found")
	}

	stored.Status = position.Status
	stored.Profit = position.Profit
	stored.ClosedAt = position.ClosedAt
	p.positions[position.Id] = stored

	return nil
}
func (p *positionStorageStub) Find(id string) (model.Position, error) {
	position, ok := p.positions[id]
	if !ok {
		return position, errors.New("position is not found")
	}

	return position, nil
}
func (p *positionStorageStub) FindOpenByIds(ids model.PositionIdList) []model.Position {
	list := make([]model.Position, 0)

	for _, id := range p.order {
		if !ids.Contains(id) {
			continue
		}

		position := p.positions[id]
		if position.IsOpen() {
			list = append(list, position)
		}
	}

	return list
}
