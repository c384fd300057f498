package worker

import (
	"context"
	"fmt"
	"time"

	"belutin-web/internal/metrics"
	"belutin-web/internal/notify"
	"belutin-web/internal/service"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// OTPTaskHandler delivers queued login codes.
type OTPTaskHandler struct {
	sender service.OTPSender
	logger *logrus.Logger
	now    func() time.Time
}

func NewOTPTaskHandler(sender service.OTPSender, logger *logrus.Logger) *OTPTaskHandler {
	return &OTPTaskHandler{sender: sender, logger: logger, now: time.Now}
}

func (h *OTPTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	p, err := notify.ParseOTPPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	log := h.logger.WithFields(logrus.Fields{
		"task":  task.Type(),
		"email": p.Email,
	})

	if !h.now().Before(p.ExpiresAt) {
		log.Warn("OTP expired before delivery, dropping")
		metrics.OTPDeliveries.WithLabelValues(h.sender.Name(), "expired").Inc()
		return nil
	}

	if err := h.sender.SendOTP(ctx, p.Email, p.Code, p.ExpiresAt); err != nil {
		metrics.OTPDeliveries.WithLabelValues(h.sender.Name(), "error").Inc()
		log.WithError(err).Error("Failed to deliver OTP")
		return err
	}
	metrics.OTPDeliveries.WithLabelValues(h.sender.Name(), "ok").Inc()
	log.Info("OTP delivered")
	return nil
}
