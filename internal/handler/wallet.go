package handler

import (
	"errors"
	"net/http"
	"os"

	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/internal/wallet"
	"github.com/AlexZinkM/votechain/votechain"
)

const newPasswordPrompt = "Choose a password for the new wallet: "

// WalletHandler serves the wallet connection and key generation
type WalletHandler struct {
	app         *votechain.App
	keyFilePath string
	prompter    wallet.Prompter
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(app *votechain.App, keyFilePath string, prompter wallet.Prompter) (*WalletHandler, error) {
	if keyFilePath == "" {
		return nil, errors.New("KEY_FILE_PATH not set")
	}
	return &WalletHandler{app: app, keyFilePath: keyFilePath, prompter: prompter}, nil
}

// Generate handles POST /wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new account and saves it to the .cwt key file. The password is entered in the server terminal.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	password, err := h.prompter.Prompt(newPasswordPrompt)
	if err != nil {
		badRequest(w, err)
		return
	}
	defer clear(password) // Always clear password from memory
	if len(password) == 0 {
		badRequest(w, errors.New("password cannot be empty"))
		return
	}

	address, err := wallet.Generate(h.keyFilePath, password)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Requests account access from the key file (password prompt in the server terminal) and loads the dashboard
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletIndicator
// @Failure      403  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if _, err := h.app.Connect(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.app.Sessions.Indicator())
}

// Status handles GET /wallet
// @Summary      Wallet connection indicator
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletIndicator
// @Router       /wallet [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.app.Sessions.Indicator())
}
