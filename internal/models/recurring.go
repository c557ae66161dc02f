package models

// RecurringItem is a user-declared recurring transaction template anchored
// to a day of month. DayOfMonth is kept within [1,28] so every month has a
// valid occurrence.
type RecurringItem struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Category   string  `json:"category"`
	Merchant   string  `json:"merchant"`
	Account    string  `json:"account"`
	Note       string  `json:"note"`
	DayOfMonth int     `json:"day_of_month"`
	IsActive   bool    `json:"is_active"`
	CreatedAt  string  `json:"created_at"`
}

// ClampDayOfMonth forces a day-of-month into [1,28].
func ClampDayOfMonth(day int) int {
	if day < 1 {
		return 1
	}
	if day > 28 {
		return 28
	}
	return day
}
