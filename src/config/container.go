package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-grid-bot/src/controller"
	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/service/exchange"
	"gitlab.com/open-soft/go-grid-bot/src/service/grid"
	"gitlab.com/open-soft/go-grid-bot/src/utils"
	"gitlab.com/open-soft/go-grid-bot/src/validator"
)

const DefaultTickIntervalMilliseconds = 1000

func InitServiceContainer() Container {
	db, err := sql.Open("mysql", os.Getenv("DATABASE_DSN"))

	if err != nil {
		log.Fatal(fmt.Sprintf("MySQL can't connect: %s", err.Error()))
	}

	db.SetMaxIdleConns(64)
	db.SetMaxOpenConns(64)
	db.SetConnMaxLifetime(time.Minute)

	var ctx = context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_DSN"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	timeService := utils.TimeHelper{}
	formatter := utils.Formatter{}

	walletRepository := repository.WalletRepository{
		DB: db,
	}

	walletUuid := os.Getenv("WALLET_UUID")
	if walletUuid == "" {
		walletUuid = uuid.New().String()
		log.Printf("WALLET_UUID is not set, generated: %s", walletUuid)
	}

	currentWallet := walletRepository.GetCurrentWallet(walletUuid)
	if currentWallet == nil {
		err := walletRepository.CreateWallet(model.Wallet{
			WalletUuid: walletUuid,
			CreatedAt:  timeService.GetNowDateTimeString(),
		})
		if err != nil {
			panic(err)
		}

		currentWallet = walletRepository.GetCurrentWallet(walletUuid)
		if currentWallet == nil {
			panic(fmt.Sprintf("Can't initialize wallet: %s", walletUuid))
		}
	}

	log.Printf("Wallet [%s] is initialized successfully", currentWallet.WalletUuid)

	settingsRepository := repository.SettingsRepository{
		DB:  db,
		RDB: rdb,
		Ctx: &ctx,
	}
	gridRepository := repository.GridRepository{
		DB:  db,
		RDB: rdb,
		Ctx: &ctx,
	}
	positionRepository := repository.PositionRepository{
		DB: db,
	}

	walletService := exchange.WalletService{
		WalletRepository: &walletRepository,
		RDB:              rdb,
		Ctx:              &ctx,
	}

	priceService := exchange.PriceService{
		RDB:         rdb,
		Ctx:         &ctx,
		TimeService: &timeService,
	}

	thresholdResolver := grid.ThresholdResolver{}

	capacityGuard := grid.CapacityGuard{
		Wallet:    &walletService,
		Formatter: &formatter,
	}

	positionLedger := grid.PositionLedger{
		PositionRepository: &positionRepository,
		TimeService:        &timeService,
	}

	decisionEngine := grid.DecisionEngine{
		GridRepository: &gridRepository,
		Ledger:         &positionLedger,
		Resolver:       &thresholdResolver,
		Guard:          &capacityGuard,
		Wallet:         &walletService,
		Formatter:      &formatter,
		TimeService:    &timeService,
	}

	tickInterval := DefaultTickIntervalMilliseconds
	if value, err := strconv.Atoi(os.Getenv("GRID_TICK_INTERVAL_MS")); err == nil && value > 0 {
		tickInterval = value
	}

	gridTrigger := grid.GridTrigger{
		GridRepository:       &gridRepository,
		SettingsRepository:   &settingsRepository,
		PriceService:         &priceService,
		Engine:               &decisionEngine,
		TimeService:          &timeService,
		IntervalMilliseconds: int64(tickInterval),
	}

	orderSettingsValidator := validator.OrderSettingsValidator{
		BracketTableValidator: &validator.BracketTableValidator{},
	}

	gridController := controller.GridController{
		CurrentWallet:          currentWallet,
		SettingsRepository:     &settingsRepository,
		GridRepository:         &gridRepository,
		Engine:                 &decisionEngine,
		Trigger:                &gridTrigger,
		OrderSettingsValidator: &orderSettingsValidator,
	}

	walletController := controller.WalletController{
		CurrentWallet:    currentWallet,
		WalletRepository: &walletRepository,
		WalletService:    &walletService,
	}

	return Container{
		Db:                 db,
		CurrentWallet:      currentWallet,
		TimeService:        &timeService,
		Formatter:          &formatter,
		WalletRepository:   &walletRepository,
		SettingsRepository: &settingsRepository,
		GridRepository:     &gridRepository,
		PositionRepository: &positionRepository,
		WalletService:      &walletService,
		PriceService:       &priceService,
		DecisionEngine:     &decisionEngine,
		GridTrigger:        &gridTrigger,
		GridController:     &gridController,
		WalletController:   &walletController,
	}
}

type Container struct {
	Db                 *sql.DB
	CurrentWallet      *model.Wallet
	TimeService        *utils.TimeHelper
	Formatter          *utils.Formatter
	WalletRepository   *repository.WalletRepository
	SettingsRepository *repository.SettingsRepository
	GridRepository     *repository.GridRepository
	PositionRepository *repository.PositionRepository
	WalletService      *exchange.WalletService
	PriceService       *exchange.PriceService
	DecisionEngine     *grid.DecisionEngine
	GridTrigger        *grid.GridTrigger
	GridController     *controller.GridController
	WalletController   *controller.WalletController
}

func (c *Container) StartHttpServer() {
	http.HandleFunc("/order/settings/create", c.GridController.CreateOrderSettingsAction)
	http.HandleFunc("/order/settings/update", c.GridController.UpdateOrderSettingsAction)
	http.HandleFunc("/order/settings/list", c.GridController.GetOrderSettingsListAction)
	http.HandleFunc("/grid/state/", c.GridController.GetGridStateAction)
	http.HandleFunc("/grid/switch/", c.GridController.SwitchGridAction)
	http.HandleFunc("/grid/position/list/", c.GridController.GetPositionListAction)
	http.HandleFunc("/grid/sweep", c.GridController.PostSweepAction)
	http.HandleFunc("/wallet/balance/list", c.WalletController.GetBalanceListAction)
	http.HandleFunc("/wallet/balance", c.WalletController.PutBalanceAction)

	go func() {
		_ = http.ListenAndServe(":8080", nil)
	}()
}
