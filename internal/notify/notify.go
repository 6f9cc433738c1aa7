package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/kamaukinuthia/irrigo-backend/pkg/config"
	"github.com/kamaukinuthia/irrigo-backend/pkg/db/models"
	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ChannelSender delivers one message over a single channel.
type ChannelSender interface {
	Channel() enums.NotifyChannel
	Send(ctx context.Context, recipient, subject, body string) error
}

// Notifier is the quote-facing delivery surface.
type Notifier struct {
	cfg      config.NotifyConfig
	email    ChannelSender
	whatsapp ChannelSender
	sms      ChannelSender
	logg     *logger.Logger
}

// New wires the notifier with its channel senders. Nil chat senders disable
// those channels regardless of configuration.
func New(cfg config.NotifyConfig, email, whatsapp, sms ChannelSender, logg *logger.Logger) (*Notifier, error) {
	if email == nil {
		return nil, fmt.Errorf("email sender required")
	}
	return &Notifier{cfg: cfg, email: email, whatsapp: whatsapp, sms: sms, logg: logg}, nil
}

// SendQuoteDocument delivers the rendered quotation. Email must succeed; the
// chat channels are best-effort and only logged on failure.
func (n *Notifier) SendQuoteDocument(ctx context.Context, quote *models.Quote, html string) error {
	subject := fmt.Sprintf("Your irrigation quotation - %s", quote.ProjectType)
	if err := n.email.Send(ctx, quote.CustomerEmail, subject, html); err != nil {
		return fmt.Errorf("email delivery: %w", err)
	}

	chatBody := fmt.Sprintf(
		"Hello %s, your irrigation quotation totalling KES %.2f has been emailed to %s.",
		quote.CustomerName, quote.Total, quote.CustomerEmail,
	)
	n.bestEffortChat(ctx, quote, chatBody)
	return nil
}

// SendQuoteAcknowledgement confirms receipt of a new quote request. All
// channels are best-effort; the combined error is returned for logging only.
func (n *Notifier) SendQuoteAcknowledgement(ctx context.Context, quote *models.Quote) error {
	subject := "We received your quote request"
	body := fmt.Sprintf(
		"Hello %s, thank you for your %s irrigation enquiry for %s. Our team will be in touch shortly.",
		quote.CustomerName, quote.ProjectType, quote.Location,
	)

	var errs error
	if err := n.email.Send(ctx, quote.CustomerEmail, subject, body); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("email: %w", err))
	}
	errs = multierr.Append(errs, n.chatErrors(ctx, quote, body))
	return errs
}

func (n *Notifier) bestEffortChat(ctx context.Context, quote *models.Quote, body string) {
	if err := n.chatErrors(ctx, quote, body); err != nil && n.logg != nil {
		logCtx := n.logg.WithQuoteID(ctx, quote.ID.String())
		n.logg.Warn(n.logg.WithField(logCtx, "error", err.Error()), "notify.chat.failed")
	}
}

func (n *Notifier) chatErrors(ctx context.Context, quote *models.Quote, body string) error {
	var errs error
	if n.cfg.WhatsAppEnabled && n.whatsapp != nil {
		if err := n.whatsapp.Send(ctx, quote.CustomerPhone, "", body); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("whatsapp: %w", err))
		}
	}
	if n.cfg.SMSEnabled && n.sms != nil {
		if err := n.sms.Send(ctx, quote.CustomerPhone, "", body); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sms: %w", err))
		}
	}
	return errs
}
