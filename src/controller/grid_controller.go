package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gitlab.com/open-soft/go-grid-bot/src/model"
	"gitlab.com/open-soft/go-grid-bot/src/repository"
	"gitlab.com/open-soft/go-grid-bot/src/service/grid"
	"gitlab.com/open-soft/go-grid-bot/src/validator"
)

type GridController struct {
	CurrentWallet          *model.Wallet
	SettingsRepository     *repository.SettingsRepository
	GridRepository         *repository.GridRepository
	Engine                 *grid.DecisionEngine
	Trigger                *grid.GridTrigger
	OrderSettingsValidator *validator.OrderSettingsValidator
}

func (g *GridController) CreateOrderSettingsAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	var settings model.OrderSettings

	// Try to decode the request body into the struct. If there is an error,
	// respond to the client with the error message and a 400 status code.
	err := json.NewDecoder(req.Body).Decode(&settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	settings.WalletId = g.CurrentWallet.WalletUuid

	violation := g.OrderSettingsValidator.Validate(settings)

	if violation != nil {
		http.Error(w, violation.Error(), http.StatusBadRequest)

		return
	}

	existing := g.SettingsRepository.GetOrderSettings(settings.WalletId, settings.OrderId)
	if existing != nil {
		http.Error(w, "Order settings have already existed", http.StatusBadRequest)

		return
	}

	_, err = g.SettingsRepository.Create(settings)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	_, err = g.Engine.Initialize(settings)

	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)

		return
	}

	entity := g.SettingsRepository.GetOrderSettings(settings.WalletId, settings.OrderId)
	if entity == nil {
		http.Error(w, "Order settings are not found", http.StatusServiceUnavailable)

		return
	}

	encodedRes, _ := json.Marshal(entity)
	fmt.Fprintf(w, string(encodedRes))
}

func (g *GridController) UpdateOrderSettingsAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "PUT" {
		http.Error(w, "Only PUT method is allowed", http.StatusMethodNotAllowed)

		return
	}

	var settings model.OrderSettings

	err := json.NewDecoder(req.Body).Decode(&settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	settings.WalletId = g.CurrentWallet.WalletUuid

	violation := g.OrderSettingsValidator.Validate(settings)

	if violation != nil {
		http.Error(w, violation.Error(), http.StatusBadRequest)

		return
	}

	entity := g.SettingsRepository.GetOrderSettings(settings.WalletId, settings.OrderId)
	if entity == nil {
		http.Error(w, "Order settings are not found", http.StatusBadRequest)

		return
	}

	settings.Id = entity.Id
	err = g.SettingsRepository.Update(settings)

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	entity = g.SettingsRepository.GetOrderSettings(settings.WalletId, settings.OrderId)
	if entity == nil {
		http.Error(w, "Order settings are not found", http.StatusServiceUnavailable)

		return
	}

	encodedRes, _ := json.Marshal(entity)
	fmt.Fprintf(w, string(encodedRes))
}

func (g *GridController) GetOrderSettingsListAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	list := g.SettingsRepository.GetWalletSettingsList(g.CurrentWallet.WalletUuid)

	encodedRes, _ := json.Marshal(list)
	fmt.Fprintf(w, string(encodedRes))
}

func (g *GridController) GetGridStateAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	orderId := strings.TrimPrefix(req.URL.Path, "/grid/state/")

	state := g.GridRepository.GetGridStateCached(g.CurrentWallet.WalletUuid, orderId)
	if state == nil {
		http.Error(w, "Grid state is not found", http.StatusNotFound)

		return
	}

	encodedRes, _ := json.Marshal(state)
	fmt.Fprintf(w, string(encodedRes))
}

// SwitchGridAction toggles grid evaluation for one order. A stopped grid
// keeps its state and positions, the trigger just skips it.
func (g *GridController) SwitchGridAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "PUT" {
		http.Error(w, "Only PUT method is allowed", http.StatusMethodNotAllowed)

		return
	}

	orderId := strings.TrimPrefix(req.URL.Path, "/grid/switch/")

	state, err := g.GridRepository.GetGridState(g.CurrentWallet.WalletUuid, orderId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if state.IsActive {
		err = g.Engine.Stop(g.CurrentWallet.WalletUuid, orderId)
	} else {
		err = g.Engine.Start(g.CurrentWallet.WalletUuid, orderId)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	state, err = g.GridRepository.GetGridState(g.CurrentWallet.WalletUuid, orderId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)

		return
	}

	encodedRes, _ := json.Marshal(state)
	fmt.Fprintf(w, string(encodedRes))
}

func (g *GridController) GetPositionListAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "GET" {
		http.Error(w, "Only GET method is allowed", http.StatusMethodNotAllowed)

		return
	}

	orderId := strings.TrimPrefix(req.URL.Path, "/grid/position/list/")

	positions, err := g.Engine.OpenPositions(g.CurrentWallet.WalletUuid, orderId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	encodedRes, err := json.Marshal(positions)
	if err != nil {
		log.Printf("Position list marshal error: %s", err.Error())
		http.Error(w, "Something went wrong", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintf(w, string(encodedRes))
}

func (g *GridController) PostSweepAction(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if req.Method == "OPTIONS" {
		fmt.Fprintf(w, "OK")
		return
	}

	walletUuid := req.URL.Query().Get("walletUuid")

	if walletUuid != g.CurrentWallet.WalletUuid {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	if req.Method != "POST" {
		http.Error(w, "Only POST method is allowed", http.StatusMethodNotAllowed)

		return
	}

	if !g.Trigger.ProcessSweep() {
		http.Error(w, "Sweep is already running", http.StatusConflict)

		return
	}

	fmt.Fprintf(w, "OK")
}
