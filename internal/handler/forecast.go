package handler

import (
	"net/http"
)

// Forecast returns the primary day-by-day balance projection.
// ?days=N sets the window, clamped to the supported range.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.ComputeForecast(r.Context(), uid, queryInt(r, "days"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ForecastTimeline returns the alternate event-timeline projection with the
// next-income and safe-to-spend summary.
func (h *Handler) ForecastTimeline(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.ComputeTimeline(r.Context(), uid, queryInt(r, "days"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
