package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"demopilot/internal/application/billing/usecases"
	"demopilot/internal/shared/config"
	"demopilot/internal/shared/logger"
)

// SMTPAlertNotifier mails billing alerts to the operations inbox. Failures
// are the caller's to log; reconciliation never depends on delivery.
type SMTPAlertNotifier struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPAlertNotifier(cfg *config.EmailConfig, logger logger.Interface) usecases.AlertNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPAlertNotifier{
		cfg:    cfg,
		dialer: dialer,
		logger: logger,
	}
}

func (n *SMTPAlertNotifier) NotifySubscriptionDeleted(ctx context.Context, customerRef string) error {
	subject := "Subscription deleted"
	body := fmt.Sprintf(`A provider subscription was deleted and the local record was reset to the free plan.

Billing customer reference: %s

No action is required unless the customer reports an issue.
`, customerRef)

	return n.send(subject, body)
}

func (n *SMTPAlertNotifier) NotifyUnmatchedCustomer(ctx context.Context, eventID, customerRef string) error {
	subject := "Billing event matched no subscription"
	body := fmt.Sprintf(`A verified billing event references a customer with no local subscription record.

Event ID: %s
Billing customer reference: %s

The provider will redeliver the event. If this repeats, the checkout completion event was likely lost and the record needs manual reconciliation.
`, eventID, customerRef)

	return n.send(subject, body)
}

func (n *SMTPAlertNotifier) send(subject, body string) error {
	if n.cfg.OpsAddress == "" {
		return fmt.Errorf("ops address is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromAddress)
	m.SetHeader("To", n.cfg.OpsAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	return nil
}
