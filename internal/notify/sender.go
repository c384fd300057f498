package notify

import (
	"context"
	"time"

	"belutin-web/internal/config"

	"github.com/sirupsen/logrus"
)

// Sender delivers a login code to one address.
type Sender interface {
	Name() string
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}

// Direct returns the SMTP sender when a relay is configured and the log sender
// otherwise. Production refuses to run without SMTP.
func Direct(cfg *config.Config, logger *logrus.Logger) (Sender, error) {
	if cfg.SMTPEnabled() {
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger), nil
	}
	if cfg.IsProduction() {
		return nil, ErrNoMailer
	}
	return NewLogSender(logger), nil
}
