package handler

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/votechain"
)

// DashboardHandler serves the rendered page
type DashboardHandler struct {
	app *votechain.App
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(app *votechain.App) *DashboardHandler {
	return &DashboardHandler{app: app}
}

// Get handles GET /dashboard
// @Summary      Dashboard
// @Description  Proposals, balance, stats, reputation, busy indicator and banner. refresh=true re-reads the ledgers first.
// @Tags         dashboard
// @Produce      json
// @Param        refresh  query     bool  false  "Re-read every category before rendering"
// @Success      200      {object}  model.Dashboard
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Query().Get("refresh") == "true" {
		writeJSON(w, http.StatusOK, h.app.Reload(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, h.app.Dashboard())
}

// DismissBanner handles POST /dashboard/banner/dismiss
// @Summary      Dismiss banner
// @Tags         dashboard
// @Success      204
// @Router       /dashboard/banner/dismiss [post]
func (h *DashboardHandler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.app.View.DismissBanner()
	w.WriteHeader(http.StatusNoContent)
}

// Reputation handles GET /reputation
// @Summary      Reputation of the connected account
// @Description  Only available when a reputation ledger is configured
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  model.Reputation
// @Failure      404  {object}  model.ErrorResponse
// @Router       /reputation [get]
func (h *DashboardHandler) Reputation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	reputation, err := h.app.Reputation(r.Context())
	if err != nil {
		if errors.Is(err, votechain.ErrNoReputation) {
			writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reputation)
}
