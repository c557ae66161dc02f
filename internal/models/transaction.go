package models

import "time"

// Transaction represents a single historical cash movement. Amount is
// signed: negative for spending, positive for income.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Merchant    string    `json:"merchant"`
	Account     string    `json:"account"`
	Note        string    `json:"note"`
	ImportBatch string    `json:"import_batch,omitempty"`
	CreatedAt   string    `json:"created_at"`
}
