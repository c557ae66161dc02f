package handler

import (
	"encoding/json"
	"net/http"

	"github.com/budgetflow/budgetflow/internal/models"
)

type recurringRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	Merchant   string  `json:"merchant"`
	Account    string  `json:"account"`
	Note       string  `json:"note"`
	DayOfMonth int     `json:"day_of_month"`
	IsActive   *bool   `json:"is_active"`
}

func (req *recurringRequest) toModel(userID, id int64) *models.RecurringItem {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.RecurringItem{
		ID:         id,
		UserID:     userID,
		Name:       req.Name,
		Amount:     req.Amount,
		Category:   req.Category,
		Merchant:   req.Merchant,
		Account:    req.Account,
		Note:       req.Note,
		DayOfMonth: req.DayOfMonth,
		IsActive:   active,
	}
}

// ListRecurring returns the user's recurring items
func (h *Handler) ListRecurring(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListRecurringItems(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.RecurringItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// CreateRecurring stores a new recurring item
func (h *Handler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req recurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.svc.CreateRecurringItem(r.Context(), req.toModel(uid, 0))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdateRecurring edits an existing recurring item
func (h *Handler) UpdateRecurring(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var req recurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item := req.toModel(uid, id)
	if err := h.svc.UpdateRecurringItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteRecurring removes a recurring item
func (h *Handler) DeleteRecurring(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteRecurringItem(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
