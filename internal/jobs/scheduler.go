// Package jobs runs the daily maintenance work: rolling overdue
// subscription anchors forward and sending reminder emails.
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/forecast"
	"github.com/budgetflow/budgetflow/internal/recurrence"
	"github.com/budgetflow/budgetflow/internal/service"
)

// MailSender is the slice of the email sender the jobs use.
type MailSender interface {
	SendUpcomingBillReminder(to, username, billName string, dueDate time.Time, amount float64) error
	SendLowBalanceAlert(to, username, lowestDate string, lowestBalance float64, windowDays int) error
}

// Jobs bundles the daily maintenance tasks.
type Jobs struct {
	svc   *service.Service
	store service.Storage
	mail  MailSender
	cfg   *config.Config
	log   *logrus.Logger
	now   func() time.Time
}

// NewJobs initializes the daily jobs.
func NewJobs(svc *service.Service, store service.Storage, mail MailSender, cfg *config.Config, log *logrus.Logger) *Jobs {
	return &Jobs{svc: svc, store: store, mail: mail, cfg: cfg, log: log, now: time.Now}
}

// RunDaily executes all maintenance tasks. Each task logs and continues on
// failure; one broken user must not starve the rest.
func (j *Jobs) RunDaily(ctx context.Context) {
	j.AdvanceDueSubscriptions(ctx)
	if j.mail != nil && j.cfg.EmailEnabled() {
		j.SendBillReminders(ctx)
		j.SendLowBalanceAlerts(ctx)
	}
}

// AdvanceDueSubscriptions rolls every overdue subscription anchor forward:
// the stale next date becomes the last date and the next date advances past
// today by the item's cadence. Items with an unknown cadence are left alone.
func (j *Jobs) AdvanceDueSubscriptions(ctx context.Context) {
	now := dates.Midnight(j.now())
	due, err := j.store.ListDueSubscriptions(ctx, now)
	if err != nil {
		j.log.Errorf("Failed to list due subscriptions: %v", err)
		return
	}

	var advanced, skipped int
	for _, sub := range due {
		next, ok := recurrence.NextAfter(*sub.NextDate, sub.Cadence, now)
		if !ok {
			skipped++
			continue
		}
		last := *sub.NextDate
		sub.LastDate = &last
		sub.NextDate = &next
		if err := j.store.UpdateSubscription(ctx, &sub); err != nil {
			j.log.Errorf("Failed to advance subscription %d: %v", sub.ID, err)
			continue
		}
		advanced++
	}
	if advanced > 0 || skipped > 0 {
		j.log.Infof("Subscription advance completed: advanced=%d skipped=%d", advanced, skipped)
	}
}

// SendBillReminders emails each user about active charges whose next date
// falls inside the reminder window.
func (j *Jobs) SendBillReminders(ctx context.Context) {
	now := dates.Midnight(j.now())
	cutoff := dates.AddDays(now, j.cfg.BillReminderDays)

	users, err := j.store.ListUsers(ctx)
	if err != nil {
		j.log.Errorf("Failed to list users for bill reminders: %v", err)
		return
	}

	for _, user := range users {
		subs, err := j.store.ListSubscriptions(ctx, user.ID, true)
		if err != nil {
			j.log.Errorf("Failed to list subscriptions for user %d: %v", user.ID, err)
			continue
		}
		for _, sub := range subs {
			if sub.NextDate == nil || sub.NextDate.Before(now) || sub.NextDate.After(cutoff) {
				continue
			}
			amount := forecast.ResolveSubscriptionAmount(sub)
			if amount >= 0 {
				continue // only charges warrant a reminder
			}
			if err := j.mail.SendUpcomingBillReminder(user.Email, user.Username, sub.DisplayName, *sub.NextDate, amount); err != nil {
				j.log.Errorf("Failed to send bill reminder to user %d: %v", user.ID, err)
			}
		}
	}
}

// SendLowBalanceAlerts emails each user whose forecast dips below zero.
func (j *Jobs) SendLowBalanceAlerts(ctx context.Context) {
	users, err := j.store.ListUsers(ctx)
	if err != nil {
		j.log.Errorf("Failed to list users for balance alerts: %v", err)
		return
	}

	for _, user := range users {
		result, err := j.svc.ComputeForecast(ctx, user.ID, j.cfg.ForecastDefaultDays)
		if err != nil {
			j.log.Errorf("Failed to compute forecast for user %d: %v", user.ID, err)
			continue
		}
		if result.Lowest.Balance >= 0 {
			continue
		}
		if err := j.mail.SendLowBalanceAlert(user.Email, user.Username, result.Lowest.Date, result.Lowest.Balance, result.Days); err != nil {
			j.log.Errorf("Failed to send low balance alert to user %d: %v", user.ID, err)
		}
	}
}
