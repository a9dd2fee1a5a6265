package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/votechain/internal/model"
	"github.com/AlexZinkM/votechain/votechain"
)

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the consistent error body. Classified errors carry their kind.
func writeError(w http.ResponseWriter, err error) {
	kind := votechain.KindOf(err)
	writeJSON(w, statusFor(kind), model.ErrorResponse{
		Error: votechain.Message(err),
		Code:  string(kind),
	})
}

func statusFor(kind votechain.Kind) int {
	switch kind {
	case votechain.KindEmptyInput, votechain.KindInvalidAddress, votechain.KindInvalidAmount:
		return http.StatusBadRequest
	case votechain.KindNotConnected:
		return http.StatusUnauthorized
	case votechain.KindUserRejected, votechain.KindUnauthorized:
		return http.StatusForbidden
	case votechain.KindNoWalletDetected, votechain.KindProposalNotFound:
		return http.StatusNotFound
	case votechain.KindAlreadyVoted:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// badRequest writes a 400 for malformed request bodies
func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
}
