package client

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type SocketStreamsRequest struct {
	Id     int64    `json:"id"`
	Method string   `json:"method"`
	Params []string `json:"params"`
}

func GetTickerStreams(symbols []string) []string {
	streams := make([]string, 0)

	for _, symbol := range symbols {
		streams = append(streams, fmt.Sprintf("%s@ticker", strings.ToLower(symbol)))
	}

	return streams
}

// Listen connects to the ticker stream endpoint and pumps raw messages into
// the given channel, reconnecting with a delay on any read failure.
func Listen(address string, tickerChannel chan<- []byte, streams []string, connectionId int64) *websocket.Conn {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		log.Printf("[err_1] WS Events [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 3)
		connectionId++

		return Listen(address, tickerChannel, streams, connectionId)
	}

	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Printf("[err_2] WS Events, read [%s]: %s", address, err.Error())

				_ = connection.Close()
				log.Printf("[err_2] WS Events, wait and reconnect...")
				time.Sleep(time.Second * 3)
				connectionId++
				Listen(address, tickerChannel, streams, connectionId)
				return
			}

			tickerChannel <- message
		}
	}()

	if len(streams) > 0 {
		socketRequest := SocketStreamsRequest{
			Id:     connectionId,
			Method: "SUBSCRIBE",
			Params: streams,
		}
		serialized, _ := json.Marshal(socketRequest)
		_ = connection.WriteMessage(websocket.TextMessage, serialized)
	}

	return connection
}
