package forecast

import (
	"math"

	"github.com/budgetflow/budgetflow/internal/models"
)

// EstimateDailyVariable computes the average daily net cash flow over a
// trailing lookback window, clamped to be non-positive. It only ever
// projects a spending drag: recurring income belongs to explicit recurring
// items and subscriptions, never to inferred noise.
func EstimateDailyVariable(txs []models.Transaction, lookbackDays int) float64 {
	if lookbackDays < 1 {
		lookbackDays = 1
	}
	var net float64
	for _, tx := range txs {
		if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
			continue
		}
		net += tx.Amount
	}
	avg := net / float64(lookbackDays)
	if avg > 0 {
		return 0
	}
	return avg
}
