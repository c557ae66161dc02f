// Package service holds the business logic between the HTTP handlers and
// storage. Forecast and detection math lives in the pure packages
// internal/forecast, internal/recurrence and internal/detect; this layer
// assembles their inputs from storage snapshots.
package service

import (
	"context"
	"time"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/models"
	"github.com/sirupsen/logrus"
)

// Storage is the persistence surface the service depends on. Implemented by
// repository.Repository; tests use an in-memory fake.
type Storage interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	GetUserSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
	UpsertUserSettings(ctx context.Context, settings *models.UserSettings) error

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id int64) error
	ImportBatchExists(ctx context.Context, userID int64, batch string) (bool, error)

	CreateRecurringItem(ctx context.Context, item *models.RecurringItem) error
	ListRecurringItems(ctx context.Context, userID int64, activeOnly bool) ([]models.RecurringItem, error)
	UpdateRecurringItem(ctx context.Context, item *models.RecurringItem) error
	DeleteRecurringItem(ctx context.Context, userID, id int64) error

	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]models.Subscription, error)
	ListDueSubscriptions(ctx context.Context, asOf time.Time) ([]models.Subscription, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, userID, id int64) error
	AddIgnoredMerchant(ctx context.Context, userID int64, merchantKey string) error
	ListIgnoredMerchantKeys(ctx context.Context, userID int64) ([]string, error)
}

// Service handles business logic
type Service struct {
	store  Storage
	log    *logrus.Logger
	config *config.Config
	now    func() time.Time
}

// NewService initializes a new service
func NewService(store Storage, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, log: log, config: cfg, now: time.Now}
}
