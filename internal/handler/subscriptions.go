package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

type subscriptionRequest struct {
	MerchantKey    string  `json:"merchant_key"`
	DisplayName    string  `json:"display_name"`
	Cadence        string  `json:"cadence"`
	ExpectedAmount float64 `json:"expected_amount"`
	AmountMin      float64 `json:"amount_min"`
	AmountMax      float64 `json:"amount_max"`
	LastDate       string  `json:"last_date"`
	NextDate       string  `json:"next_date"`
	IsActive       *bool   `json:"is_active"`
	Kind           string  `json:"kind"`
}

type confirmCandidateRequest struct {
	Candidate models.SubscriptionCandidate `json:"candidate"`
	Kind      string                       `json:"kind"`
	NextDate  string                       `json:"next_date"`
}

type ignoreMerchantRequest struct {
	MerchantKey string `json:"merchant_key"`
}

func parseOptionalDate(w http.ResponseWriter, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	date, err := dates.ParseISODate(s)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return nil, false
	}
	return &date, true
}

// ListSubscriptions returns the user's subscriptions and bills
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	subs, err := h.svc.ListSubscriptions(r.Context(), uid)
	if err != nil {
		respondError(w, err)
		return
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	respondJSON(w, http.StatusOK, subs)
}

// CreateSubscription stores a directly entered subscription or bill
func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sub, ok := h.subscriptionFromRequest(w, req, uid, 0)
	if !ok {
		return
	}

	created, err := h.svc.CreateSubscription(r.Context(), sub)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateSubscription edits an existing subscription
func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sub, ok := h.subscriptionFromRequest(w, req, uid, id)
	if !ok {
		return
	}

	if err := h.svc.UpdateSubscription(r.Context(), sub); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// DeleteSubscription removes a subscription
func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteSubscription(r.Context(), uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListCandidates runs the subscription candidate detector over the user's
// transaction history. ?lookbackDays=N adjusts the window.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	candidates, err := h.svc.ComputeSubscriptionCandidates(r.Context(), uid, queryInt(r, "lookbackDays"))
	if err != nil {
		respondError(w, err)
		return
	}
	if candidates == nil {
		candidates = []models.SubscriptionCandidate{}
	}
	respondJSON(w, http.StatusOK, candidates)
}

// ConfirmCandidate promotes a detected candidate into a subscription
func (h *Handler) ConfirmCandidate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req confirmCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	nextDate, ok := parseOptionalDate(w, req.NextDate)
	if !ok {
		return
	}

	sub, err := h.svc.ConfirmCandidate(r.Context(), uid, req.Candidate, req.Kind, nextDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// IgnoreCandidate suppresses a merchant key from future detection
func (h *Handler) IgnoreCandidate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req ignoreMerchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.svc.IgnoreMerchant(r.Context(), uid, req.MerchantKey); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) subscriptionFromRequest(w http.ResponseWriter, req subscriptionRequest, userID, id int64) (*models.Subscription, bool) {
	lastDate, ok := parseOptionalDate(w, req.LastDate)
	if !ok {
		return nil, false
	}
	nextDate, ok := parseOptionalDate(w, req.NextDate)
	if !ok {
		return nil, false
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &models.Subscription{
		ID:             id,
		UserID:         userID,
		MerchantKey:    req.MerchantKey,
		DisplayName:    req.DisplayName,
		Cadence:        req.Cadence,
		ExpectedAmount: req.ExpectedAmount,
		AmountMin:      req.AmountMin,
		AmountMax:      req.AmountMax,
		LastDate:       lastDate,
		NextDate:       nextDate,
		IsActive:       active,
		Kind:           req.Kind,
	}, true
}
