package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/integrations/camt"
	"github.com/budgetflow/budgetflow/internal/models"
)

// ImportResult summarizes a statement import or its dry-run preview.
type ImportResult struct {
	BatchID  string               `json:"batch_id"`
	Account  string               `json:"account"`
	DryRun   bool                 `json:"dry_run"`
	Imported int                  `json:"imported"`
	Skipped  bool                 `json:"skipped"` // batch was already imported
	Preview  []models.Transaction `json:"preview,omitempty"`
}

// CreateTransaction stores a manually entered transaction.
func (s *Service) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.Date.IsZero() {
		tx.Date = dates.Midnight(s.now())
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ListTransactions returns a user's transactions inside an optional date
// range; zero times disable the bounds.
func (s *Service) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, from, to)
}

// DeleteTransaction removes a transaction.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.store.DeleteTransaction(ctx, userID, id)
}

// ImportStatement parses a camt.053 XML statement and stores its entries as
// transactions. Each statement keeps its own batch id (the statement Id when
// the bank provides one), so importing the same file twice is a no-op. With
// dryRun the parsed transactions are returned as a preview and nothing is
// written.
func (s *Service) ImportStatement(ctx context.Context, userID int64, data []byte, dryRun bool) (*ImportResult, error) {
	stmt, err := camt.Parse(data)
	if err != nil {
		return nil, err
	}

	batch := stmt.ID
	if batch == "" {
		batch = uuid.New().String()
	}

	result := &ImportResult{BatchID: batch, Account: stmt.Account, DryRun: dryRun}

	txs := make([]models.Transaction, 0, len(stmt.Entries))
	for _, entry := range stmt.Entries {
		txs = append(txs, models.Transaction{
			UserID:      userID,
			Date:        entry.Date,
			Amount:      entry.Amount,
			Merchant:    entry.Merchant,
			Account:     stmt.Account,
			Note:        entry.Note,
			ImportBatch: batch,
		})
	}

	if dryRun {
		result.Preview = txs
		return result, nil
	}

	if stmt.ID != "" {
		exists, err := s.store.ImportBatchExists(ctx, userID, batch)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = true
			s.log.Infof("Statement %s already imported for user %d, skipping", batch, userID)
			return result, nil
		}
	}

	for i := range txs {
		if err := s.store.CreateTransaction(ctx, &txs[i]); err != nil {
			return nil, fmt.Errorf("failed to import statement entry: %w", err)
		}
		result.Imported++
	}

	s.log.Infof("Imported %d transactions for user %d (batch %s)", result.Imported, userID, batch)
	return result, nil
}
