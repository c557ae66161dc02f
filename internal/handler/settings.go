package handler

import (
	"encoding/json"
	"net/http"
)

type setBalanceRequest struct {
	CurrentBalance float64 `json:"current_balance"`
}

// GetSettings returns the user's settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	settings, err := h.svc.GetSettings(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// SetBalance updates the user's current balance
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req setBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	settings, err := h.svc.SetCurrentBalance(r.Context(), uid, req.CurrentBalance)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
