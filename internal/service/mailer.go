package service

import (
	"context"
	"fmt"

	"travelbuddy/internal/config"
	"travelbuddy/internal/models"
	"travelbuddy/internal/observability"

	"github.com/wneessen/go-mail"
)

// Mailer sends transactional email.
type Mailer interface {
	SendTripCreated(ctx context.Context, to string, trip *models.Trip) error
}

// smtpMailer sends mail through the configured SMTP relay.
type smtpMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewMailer returns a Mailer backed by SMTP, or a no-op mailer when no
// SMTP host is configured (local development).
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return noopMailer{}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (m *smtpMailer) SendTripCreated(ctx context.Context, to string, trip *models.Trip) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Trip Created Successfully")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Your trip to %s has been created.\n\nDates: %s to %s\nBudget: %.2f\nMax participants: %d\n\nHappy travels!",
		trip.Destination,
		trip.StartDate.Format("Jan 2, 2006"),
		trip.EndDate.Format("Jan 2, 2006"),
		trip.Budget,
		trip.MaxParticipants,
	))

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		observability.MailSends.WithLabelValues("error").Inc()
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		observability.MailSends.WithLabelValues("error").Inc()
		return fmt.Errorf("send mail: %w", err)
	}

	observability.MailSends.WithLabelValues("ok").Inc()
	return nil
}

// noopMailer drops mail silently. Used when SMTP is not configured.
type noopMailer struct{}

func (noopMailer) SendTripCreated(_ context.Context, _ string, _ *models.Trip) error {
	return nil
}
