package service

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/detect"
	"github.com/budgetflow/budgetflow/internal/models"
	"github.com/budgetflow/budgetflow/internal/recurrence"
)

// ComputeSubscriptionCandidates scans the user's transaction history for
// likely recurring charges. lookbackDays is clamped into the supported
// range; zero selects the default. The result is ephemeral and recomputed on
// every call.
func (s *Service) ComputeSubscriptionCandidates(ctx context.Context, userID int64, lookbackDays int) ([]models.SubscriptionCandidate, error) {
	lookbackDays = detect.ClampLookback(lookbackDays)
	today := dates.Midnight(s.now())

	txs, err := s.store.ListTransactions(ctx, userID, dates.AddDays(today, -lookbackDays), today)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	ignored, err := s.store.ListIgnoredMerchantKeys(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}
	existing, err := s.store.ListSubscriptions(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}

	candidates := detect.Candidates(txs, ignored, existing)
	s.log.Debugf("Detected %d subscription candidates for user %d over %d days",
		len(candidates), userID, lookbackDays)
	return candidates, nil
}

// ConfirmCandidate promotes a detected candidate into a persisted
// subscription. When the caller supplies no next date and the cadence is
// known, the anchor is derived by stepping the candidate's last observed
// date past today so the new item projects forward immediately.
func (s *Service) ConfirmCandidate(ctx context.Context, userID int64, cand models.SubscriptionCandidate, kind string, nextDate *time.Time) (*models.Subscription, error) {
	if cand.MerchantKey == "" {
		return nil, fmt.Errorf("merchant key is required")
	}
	if kind != models.KindBill {
		kind = models.KindSubscription
	}
	if nextDate == nil {
		if next, ok := recurrence.NextAfter(cand.LastDate, cand.Cadence, s.now()); ok {
			nextDate = &next
		}
	}

	lastDate := cand.LastDate
	sub := &models.Subscription{
		UserID:         userID,
		MerchantKey:    cand.MerchantKey,
		DisplayName:    cand.DisplayName,
		Cadence:        cand.Cadence,
		ExpectedAmount: cand.ExpectedAmount,
		AmountMin:      cand.AmountMin,
		AmountMax:      cand.AmountMax,
		LastDate:       &lastDate,
		NextDate:       nextDate,
		Confidence:     cand.Confidence,
		IsActive:       true,
		Kind:           kind,
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.log.Infof("Candidate confirmed for user %d: %s (%s)", userID, sub.DisplayName, sub.Kind)
	return sub, nil
}

// IgnoreMerchant suppresses a merchant key from future candidate detection.
func (s *Service) IgnoreMerchant(ctx context.Context, userID int64, merchantKey string) error {
	key := detect.NormalizeMerchantKey(merchantKey)
	if key == "" {
		return fmt.Errorf("merchant key is required")
	}
	if err := s.store.AddIgnoredMerchant(ctx, userID, key); err != nil {
		return err
	}
	s.log.Infof("Merchant ignored for user %d: %s", userID, key)
	return nil
}

// CreateSubscription stores a directly entered subscription or bill.
func (s *Service) CreateSubscription(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	sub.MerchantKey = detect.NormalizeMerchantKey(firstNonEmpty(sub.MerchantKey, sub.DisplayName))
	if sub.MerchantKey == "" {
		return nil, fmt.Errorf("merchant key is required")
	}
	if sub.Cadence == "" {
		sub.Cadence = models.CadenceUnknown
	}
	if sub.Kind != models.KindBill {
		sub.Kind = models.KindSubscription
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ListSubscriptions returns the user's subscriptions and bills.
func (s *Service) ListSubscriptions(ctx context.Context, userID int64) ([]models.Subscription, error) {
	return s.store.ListSubscriptions(ctx, userID, false)
}

// UpdateSubscription applies user edits: toggling isActive, reclassifying
// kind, adjusting amounts or the next date.
func (s *Service) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.Kind != models.KindBill {
		sub.Kind = models.KindSubscription
	}
	return s.store.UpdateSubscription(ctx, sub)
}

// DeleteSubscription removes a subscription.
func (s *Service) DeleteSubscription(ctx context.Context, userID, id int64) error {
	return s.store.DeleteSubscription(ctx, userID, id)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
