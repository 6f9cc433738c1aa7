package notify

import (
	"context"

	"github.com/kamaukinuthia/irrigo-backend/pkg/enums"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// logSender records deliveries to the structured log. It stands in for a real
// provider integration; swapping in SMTP or a gateway client only needs a new
// ChannelSender.
type logSender struct {
	channel enums.NotifyChannel
	from    string
	logg    *logger.Logger
}

// NewLogEmailSender builds the log-backed email channel.
func NewLogEmailSender(from string, logg *logger.Logger) ChannelSender {
	return &logSender{channel: enums.NotifyChannelEmail, from: from, logg: logg}
}

// NewLogWhatsAppSender builds the log-backed WhatsApp channel.
func NewLogWhatsAppSender(logg *logger.Logger) ChannelSender {
	return &logSender{channel: enums.NotifyChannelWhatsApp, logg: logg}
}

// NewLogSMSSender builds the log-backed SMS channel.
func NewLogSMSSender(logg *logger.Logger) ChannelSender {
	return &logSender{channel: enums.NotifyChannelSMS, logg: logg}
}

func (s *logSender) Channel() enums.NotifyChannel {
	return s.channel
}

func (s *logSender) Send(ctx context.Context, recipient, subject, body string) error {
	if s.logg == nil {
		return nil
	}
	fields := map[string]any{
		"channel":   string(s.channel),
		"recipient": recipient,
		"bytes":     len(body),
	}
	if s.from != "" {
		fields["from"] = s.from
	}
	if subject != "" {
		fields["subject"] = subject
	}
	s.logg.Info(s.logg.WithFields(ctx, fields), "notify.delivered")
	return nil
}
