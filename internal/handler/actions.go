package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/votechain"
)

// ActionHandler serves the mutating actions. Each request returns after the
// transaction is confirmed and the dashboard refreshed.
type ActionHandler struct {
	app *votechain.App
}

// NewActionHandler creates a new ActionHandler
func NewActionHandler(app *votechain.App) *ActionHandler {
	return &ActionHandler{app: app}
}

// CreateProposal handles POST /proposals
// @Summary      Create proposal
// @Description  Owner only. Returns the new proposal id from the ProposalCreated event.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateProposalRequest  true  "Proposal"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /proposals [post]
func (h *ActionHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateProposalRequest
	if err := decodeRequest(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.app.Actions.CreateProposal(r.Context(), req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse(result))
}

// Vote handles POST /proposals/vote
// @Summary      Vote on proposal
// @Description  One vote per account per proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        request  body      model.VoteRequest  true  "Vote"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /proposals/vote [post]
func (h *ActionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.VoteRequest
	if err := decodeRequest(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.app.Actions.VoteSelected(r.Context(), req.ProposalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse(result))
}

// Mint handles POST /tokens/mint
// @Summary      Mint tokens
// @Description  Owner only. Amount is in whole tokens and scaled by the token decimals.
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request  body      model.MintRequest  true  "Recipient and amount"
// @Success      200      {object}  model.ActionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /tokens/mint [post]
func (h *ActionHandler) Mint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.MintRequest
	if err := decodeRequest(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	result, err := h.app.Actions.MintTokens(r.Context(), req.Address, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse(result))
}

func actionResponse(result *votechain.Result) model.ActionResponse {
	return model.ActionResponse{
		Success:    true,
		Message:    result.Message,
		TxHash:     result.TxHash.Hex(),
		Block:      result.Block,
		ProposalID: result.ProposalID,
	}
}

// decodeRequest decodes a JSON body, rejecting fields the request type does not have
func decodeRequest(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
