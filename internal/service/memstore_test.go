package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/models"
	"github.com/budgetflow/budgetflow/internal/repository"
)

// memStore is an in-memory Storage used by the service tests.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	settings  map[int64]*models.UserSettings
	txs       []models.Transaction
	recurring []models.RecurringItem
	subs      []models.Subscription
	ignored   map[int64]map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[int64]*models.User),
		settings: make(map[int64]*models.UserSettings),
		ignored:  make(map[int64]map[string]bool),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetUserSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.settings[userID]; ok {
		copied := *s
		return &copied, nil
	}
	return &models.UserSettings{UserID: userID}, nil
}

func (m *memStore) UpsertUserSettings(ctx context.Context, settings *models.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *settings
	m.settings[settings.UserID] = &copied
	return nil
}

func (m *memStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx.ID = m.id()
	m.txs = append(m.txs, *tx)
	return nil
}

func (m *memStore) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, tx := range m.txs {
		if tx.UserID != userID {
			continue
		}
		if !from.IsZero() && tx.Date.Before(from) {
			continue
		}
		if !to.IsZero() && tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memStore) DeleteTransaction(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tx := range m.txs {
		if tx.UserID == userID && tx.ID == id {
			m.txs = append(m.txs[:i], m.txs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) ImportBatchExists(ctx context.Context, userID int64, batch string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.txs {
		if tx.UserID == userID && tx.ImportBatch == batch {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.id()
	m.recurring = append(m.recurring, *item)
	return nil
}

func (m *memStore) ListRecurringItems(ctx context.Context, userID int64, activeOnly bool) ([]models.RecurringItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.RecurringItem
	for _, item := range m.recurring {
		if item.UserID == userID && (!activeOnly || item.IsActive) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memStore) UpdateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.recurring {
		if existing.UserID == item.UserID && existing.ID == item.ID {
			m.recurring[i] = *item
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteRecurringItem(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, item := range m.recurring {
		if item.UserID == userID && item.ID == id {
			m.recurring = append(m.recurring[:i], m.recurring[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub.ID = m.id()
	m.subs = append(m.subs, *sub)
	return nil
}

func (m *memStore) ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Subscription
	for _, sub := range m.subs {
		if sub.UserID == userID && (!activeOnly || sub.IsActive) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memStore) ListDueSubscriptions(ctx context.Context, asOf time.Time) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Subscription
	for _, sub := range m.subs {
		if sub.IsActive && sub.NextDate != nil && !sub.NextDate.After(asOf) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (m *memStore) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.subs {
		if existing.UserID == sub.UserID && existing.ID == sub.ID {
			m.subs[i] = *sub
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) DeleteSubscription(ctx context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub.UserID == userID && sub.ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) AddIgnoredMerchant(ctx context.Context, userID int64, merchantKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ignored[userID] == nil {
		m.ignored[userID] = make(map[string]bool)
	}
	m.ignored[userID][merchantKey] = true
	return nil
}

func (m *memStore) ListIgnoredMerchantKeys(ctx context.Context, userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for key := range m.ignored[userID] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// newTestService wires a service onto a fresh memStore with a fixed clock.
func newTestService(now time.Time) (*Service, *memStore) {
	store := newMemStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", ForecastDefaultDays: 60, BillReminderDays: 3}
	svc := NewService(store, logger, cfg)
	svc.now = func() time.Time { return now }
	return svc, store
}
