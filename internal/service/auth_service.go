package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/config"
	"belutin-web/internal/metrics"
	"belutin-web/internal/models"
	"belutin-web/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OTPSender delivers a freshly issued code to the user.
type OTPSender interface {
	Name() string
	SendOTP(ctx context.Context, email, code string, expiresAt time.Time) error
}

// ErrOTPDelivery wraps sender failures so handlers can show the right message.
var ErrOTPDelivery = errors.New("failed to deliver otp")

type AuthService struct {
	users  UserStore
	otp    OTPStore
	sender OTPSender
	cfg    *config.Config
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuthService(users UserStore, otp OTPStore, sender OTPSender, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otp:    otp,
		sender: sender,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validation("Email tidak valid.")
	}
	if req.Password == "" {
		return nil, apperrors.Validation("Password wajib diisi.")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrDuplicate
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{Email: email, PasswordHash: hash, CreatedAt: s.now()}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("email", email).Info("User registered")
	return user, nil
}

// Authenticate checks the password. It is only the first factor: a session is
// granted after VerifyChallenge.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.WithField("email", user.Email).Warn("Wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// IssueChallenge creates a new code for email, stores it and sends it. The
// returned challenge carries the token the client must present on verify.
func (s *AuthService) IssueChallenge(ctx context.Context, email string) (models.OTPChallenge, error) {
	code, err := generateOTP()
	if err != nil {
		return models.OTPChallenge{}, err
	}
	ch := models.OTPChallenge{
		Token:     uuid.NewString(),
		Email:     normalizeEmail(email),
		Code:      code,
		ExpiresAt: s.now().Add(s.cfg.OTPTTL),
	}
	if err := s.otp.Save(ctx, ch); err != nil {
		return models.OTPChallenge{}, fmt.Errorf("failed to save otp challenge: %w", err)
	}

	if err := s.sender.SendOTP(ctx, ch.Email, ch.Code, ch.ExpiresAt); err != nil {
		metrics.OTPDeliveries.WithLabelValues(s.sender.Name(), "error").Inc()
		_ = s.otp.Delete(ctx, ch.Token)
		s.logger.WithError(err).WithField("email", ch.Email).Error("Failed to send OTP")
		return models.OTPChallenge{}, fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}
	metrics.OTPDeliveries.WithLabelValues(s.sender.Name(), "ok").Inc()
	metrics.OTPChallenges.WithLabelValues("issued").Inc()

	s.logger.WithFields(logrus.Fields{
		"email":      ch.Email,
		"expires_at": ch.ExpiresAt.Format(time.RFC3339),
	}).Info("OTP challenge issued")
	return ch, nil
}

// VerifyChallenge consumes the challenge on success or expiry. A wrong code
// leaves it in place so the user can retry until it expires.
func (s *AuthService) VerifyChallenge(ctx context.Context, token, code string) (*models.User, error) {
	if token == "" {
		metrics.OTPChallenges.WithLabelValues("rejected").Inc()
		return nil, apperrors.ErrInvalidOTP
	}
	ch, err := s.otp.Get(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.OTPChallenges.WithLabelValues("rejected").Inc()
			return nil, apperrors.ErrInvalidOTP
		}
		return nil, err
	}

	if ch.Expired(s.now()) {
		_ = s.otp.Delete(ctx, token)
		metrics.OTPChallenges.WithLabelValues("expired").Inc()
		return nil, apperrors.ErrExpired
	}
	if strings.TrimSpace(code) != ch.Code {
		metrics.OTPChallenges.WithLabelValues("rejected").Inc()
		s.logger.WithField("email", ch.Email).Warn("Wrong OTP")
		return nil, apperrors.ErrInvalidOTP
	}

	if err := s.otp.Delete(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to consume otp challenge: %w", err)
	}
	metrics.OTPChallenges.WithLabelValues("verified").Inc()

	user, err := s.users.FindByEmail(ctx, ch.Email)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("email", user.Email).Info("User logged in")
	return user, nil
}

func (s *AuthService) IssueAccessToken(user *models.User) (string, error) {
	return utils.GenerateAccessToken(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.JWTAccessExpire)
}

func (s *AuthService) ValidateToken(token string) (*utils.JWTClaims, error) {
	return utils.ValidateToken(token, s.cfg.JWTSecret)
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

var otpSpan = big.NewInt(900000)

// generateOTP returns a six digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
