package models

// DayBreakdown splits a day's delta into its projected sources
type DayBreakdown struct {
	Recurring float64 `json:"recurring"`
	Variable  float64 `json:"variable"`
}

// ForecastDay represents the projected balance for a specific day
type ForecastDay struct {
	Date      string       `json:"date"` // Format: YYYY-MM-DD
	Delta     float64      `json:"delta"`
	Balance   float64      `json:"balance"`
	Breakdown DayBreakdown `json:"breakdown"`
}

// LowestPoint marks the minimum projected balance and when it occurs
type LowestPoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// ForecastResult represents a day-by-day balance projection
type ForecastResult struct {
	Days                   int           `json:"days"`
	StartBalance           float64       `json:"start_balance"`
	EstimatedDailyVariable float64       `json:"estimated_daily_variable"`
	Lowest                 LowestPoint   `json:"lowest"`
	Series                 []ForecastDay `json:"series"`
}

// TimelineEvent is a single projected cash event on the alternate timeline
type TimelineEvent struct {
	Kind        string  `json:"kind"`
	RecurringID int64   `json:"recurring_id,omitempty"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// TimelineDay groups all events due on one day with the running balance
type TimelineDay struct {
	Date    string          `json:"date"`
	Delta   float64         `json:"delta"`
	Balance float64         `json:"balance"`
	Events  []TimelineEvent `json:"events"`
}

// TimelineResult is the alternate forecast mode: expanded events grouped by
// day plus a naive safe-to-spend estimate until the next income event. The
// pointer fields are null when no future income exists in the window.
type TimelineResult struct {
	StartBalance           float64       `json:"start_balance"`
	Days                   []TimelineDay `json:"days"`
	NextIncomeDate         *string       `json:"next_income_date"`
	BalanceUntilNextIncome *float64      `json:"balance_until_next_income"`
	SafeToSpendPerDay      *float64      `json:"safe_to_spend_per_day"`
}
