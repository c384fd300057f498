// Package notify delivers one-time login codes by email, either directly or
// through the asynq queue drained by cmd/worker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// ErrNoMailer is returned when no way to deliver codes is configured.
var ErrNoMailer = errors.New("SMTP_HOST must be set in production")

// TypeOTPSend is the asynq task type carrying an OTPPayload.
const TypeOTPSend = "otp:send"

type OTPPayload struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewOTPSendTask(p OTPPayload) (*asynq.Task, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode otp payload: %w", err)
	}
	// A code is useless once it expires, so retries stop there too.
	return asynq.NewTask(TypeOTPSend, body,
		asynq.Queue("critical"),
		asynq.MaxRetry(3),
		asynq.Deadline(p.ExpiresAt),
	), nil
}

func ParseOTPPayload(t *asynq.Task) (OTPPayload, error) {
	var p OTPPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to decode otp payload: %w", err)
	}
	if p.Email == "" || p.Code == "" {
		return p, fmt.Errorf("otp payload missing email or code")
	}
	return p, nil
}

// Enqueuer is the part of *asynq.Client the queue sender needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueSender hands codes to the worker.
type QueueSender struct {
	client Enqueuer
	logger *logrus.Logger
}

func NewQueueSender(client Enqueuer, logger *logrus.Logger) *QueueSender {
	return &QueueSender{client: client, logger: logger}
}

func (s *QueueSender) Name() string { return "queue" }

func (s *QueueSender) SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	task, err := NewOTPSendTask(OTPPayload{Email: email, Code: code, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue otp email: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"task_id": info.ID,
		"queue":   info.Queue,
		"email":   email,
	}).Info("OTP email queued")
	return nil
}

// LogSender writes the code to the log. Meant for local development only.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) SendOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	s.logger.WithFields(logrus.Fields{
		"email":      email,
		"code":       code,
		"expires_at": expiresAt.Format(time.RFC3339),
	}).Warn("OTP email not configured, code written to log")
	return nil
}
