package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

type transactionRequest struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Merchant string  `json:"merchant"`
	Account  string  `json:"account"`
	Note     string  `json:"note"`
}

// ListTransactions returns the user's transactions, optionally bounded by
// from/to query parameters (YYYY-MM-DD).
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var from, to time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := dates.ParseISODate(s)
		if err != nil {
			http.Error(w, "Invalid from date", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if s := r.URL.Query().Get("to"); s != "" {
		parsed, err := dates.ParseISODate(s)
		if err != nil {
			http.Error(w, "Invalid to date", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	txs, err := h.svc.ListTransactions(r.Context(), uid, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

// CreateTransaction stores a manually entered transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx := &models.Transaction{
		UserID:   uid,
		Amount:   req.Amount,
		Category: req.Category,
		Merchant: req.Merchant,
		Account:  req.Account,
		Note:     req.Note,
	}
	if req.Date != "" {
		date, err := dates.ParseISODate(req.Date)
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
		tx.Date = date
	}

	created, err := h.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// DeleteTransaction removes a transaction by id
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ImportStatement accepts a camt.053 XML statement body and imports its
// entries. Pass ?dryRun=1 to preview without writing.
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	dryRun := r.URL.Query().Get("dryRun") == "1"
	result, err := h.svc.ImportStatement(r.Context(), uid, body, dryRun)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
