package models

import "time"

// Recurrence cadences shared by subscriptions and detected candidates.
const (
	CadenceWeekly    = "weekly"
	CadenceBiweekly  = "biweekly"
	CadenceMonthly   = "monthly"
	CadenceQuarterly = "quarterly"
	CadenceYearly    = "yearly"
	CadenceUnknown   = "unknown"
)

// Subscription kinds.
const (
	KindSubscription = "subscription"
	KindBill         = "bill"
)

// Subscription is a confirmed recurring charge or bill. NextDate is the
// forecast anchor; when nil the item is excluded from projections.
type Subscription struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	MerchantKey    string     `json:"merchant_key"`
	DisplayName    string     `json:"display_name"`
	Cadence        string     `json:"cadence"`
	ExpectedAmount float64    `json:"expected_amount"`
	AmountMin      float64    `json:"amount_min"`
	AmountMax      float64    `json:"amount_max"`
	LastDate       *time.Time `json:"last_date,omitempty"`
	NextDate       *time.Time `json:"next_date,omitempty"`
	Confidence     int        `json:"confidence"`
	IsActive       bool       `json:"is_active"`
	Kind           string     `json:"kind"`
	CreatedAt      string     `json:"created_at"`
}

// SubscriptionCandidate is an ephemeral detection result. It is recomputed
// from transaction history on every request and never persisted until the
// user confirms it.
type SubscriptionCandidate struct {
	MerchantKey    string     `json:"merchant_key"`
	DisplayName    string     `json:"display_name"`
	Cadence        string     `json:"cadence"`
	ExpectedAmount float64    `json:"expected_amount"`
	AmountMin      float64    `json:"amount_min"`
	AmountMax      float64    `json:"amount_max"`
	LastDate       time.Time  `json:"last_date"`
	NextDate       *time.Time `json:"next_date"` // always nil until confirmed
	Occurrences    int        `json:"occurrences"`
	Confidence     int        `json:"confidence"`
}
