package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/budgetflow/budgetflow/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendUpcomingBillReminder notifies a user of a bill or subscription charge
// due within the reminder window.
func (s *Sender) SendUpcomingBillReminder(to, username, billName string, dueDate time.Time, amount float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Upcoming bill: %s", billName)

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Heads up: %s is due on %s for %.2f.\n"+
			"Please make sure sufficient funds are available in your account.\n",
		billName, dueDate.Format("2006-01-02"), -amount,
	)
	body += "\nBest regards,\nBudgetflow"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendLowBalanceAlert warns a user that their projected balance dips below
// zero inside the forecast window.
func (s *Sender) SendLowBalanceAlert(to, username, lowestDate string, lowestBalance float64, windowDays int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Projected low balance warning"

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Your %d-day cash-flow forecast projects a low point of %.2f on %s.\n"+
			"Consider moving funds or adjusting upcoming spending before then.\n",
		windowDays, lowestBalance, lowestDate,
	)
	body += "\nBest regards,\nBudgetflow"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
