package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gitlab.com/open-soft/go-grid-bot/src/client"
	"gitlab.com/open-soft/go-grid-bot/src/config"
	"gitlab.com/open-soft/go-grid-bot/src/model"
)

func main() {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		err = godotenv.Load()
		if err != nil {
			log.Println(err)
		}
	}

	container := config.InitServiceContainer()
	defer container.Db.Close()

	container.StartHttpServer()

	tickerChannel := make(chan []byte)

	go func() {
		for {
			message := <-tickerChannel

			var event model.TickerEvent
			err := json.Unmarshal(message, &event)

			if err != nil || event.Ticker.Symbol == "" {
				continue
			}

			if event.Ticker.Timestamp == 0 {
				event.Ticker.Timestamp = container.TimeService.GetNowUnix()
			}

			container.PriceService.SetTicker(event.Ticker)
		}
	}()

	symbols := make([]string, 0)
	for _, settings := range container.SettingsRepository.GetWalletSettingsList(container.CurrentWallet.WalletUuid) {
		symbols = append(symbols, settings.Symbol())
	}

	if len(symbols) > 0 {
		streams := client.GetTickerStreams(symbols)
		connection := client.Listen(os.Getenv("PRICE_STREAM_DSN"), tickerChannel, streams, 0)
		defer connection.Close()

		log.Printf("Ticker websocket: %s", strings.Join(streams, ", "))
	}

	container.GridTrigger.Run()
}
