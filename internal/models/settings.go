package models

// UserSettings holds per-user settings, one row per user
type UserSettings struct {
	UserID         int64   `json:"user_id"`
	CurrentBalance float64 `json:"current_balance"`
}
