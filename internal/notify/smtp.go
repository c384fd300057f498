package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var otpMail = template.Must(template.New("otp").Parse(
	`<p>Kode OTP kamu adalah <b>{{.Code}}</b></p>
<p>Kode berlaku sampai {{.Until}}.</p>`))

// SendMailFunc matches net/smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender mails the code through a plain SMTP relay.
type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
	send     SendMailFunc
	logger   *logrus.Logger
}

func NewSMTPSender(host string, port int, username, password, from string, logger *logrus.Logger) *SMTPSender {
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
		logger:   logger,
	}
}

// WithSendFunc replaces the transport, used by tests.
func (s *SMTPSender) WithSendFunc(fn SendMailFunc) *SMTPSender {
	s.send = fn
	return s
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) SendOTP(_ context.Context, email, code string, expiresAt time.Time) error {
	msg, err := BuildOTPMessage(s.from, email, code, expiresAt)
	if err != nil {
		return err
	}
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := s.send(s.addr, auth, s.from, []string{email}, msg); err != nil {
		return fmt.Errorf("failed to send otp email to %s: %w", email, err)
	}
	s.logger.WithField("email", email).Info("OTP email sent")
	return nil
}

// BuildOTPMessage renders the RFC 5322 message for a code.
func BuildOTPMessage(from, to, code string, expiresAt time.Time) ([]byte, error) {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(from, "\r\n") {
		return nil, fmt.Errorf("invalid mail address")
	}
	var body bytes.Buffer
	if err := otpMail.Execute(&body, map[string]string{
		"Code":  code,
		"Until": expiresAt.Format("15:04 MST"),
	}); err != nil {
		return nil, fmt.Errorf("failed to render otp email: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Kode OTP BELUT.IN\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}
