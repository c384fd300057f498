package handler

import (
	"errors"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/middleware"
	"belutin-web/internal/models"
	"belutin-web/internal/service"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const (
	actionSignup = "signup"
	actionLogin  = "login"
)

type AuthHandler struct {
	base
	authService   *service.AuthService
	sessionExpire int64
}

func NewAuthHandler(authService *service.AuthService, store *session.Store, sessionExpireSeconds int64, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		base:          base{store: store, logger: logger},
		authService:   authService,
		sessionExpire: sessionExpireSeconds,
	}
}

// loginMessage is the text shown on the login page for a failed attempt.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		return "Email sudah terdaftar."
	case errors.Is(err, apperrors.ErrNotFound):
		return "Akun belum terdaftar."
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return "Password salah."
	case errors.Is(err, apperrors.ErrInvalidOTP):
		return "OTP salah."
	case errors.Is(err, apperrors.ErrExpired):
		return "OTP kedaluwarsa, silakan login ulang."
	case errors.Is(err, service.ErrOTPDelivery):
		return "Error mengirim OTP."
	case errors.Is(err, apperrors.ErrValidation):
		return err.Error()
	}
	return "Terjadi kesalahan, coba lagi."
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return h.render(c, "auth/login", "Masuk", nil)
}

func (h *AuthHandler) loginPage(c *fiber.Ctx, status int, data fiber.Map) error {
	c.Status(status)
	return h.render(c, "auth/login", "Masuk", data)
}

// Auth handles the combined signup/login form.
func (h *AuthHandler) Auth(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.loginPage(c, fiber.StatusBadRequest, fiber.Map{"Error": "Form tidak valid."})
	}
	ctx := c.UserContext()

	if req.Action == actionSignup {
		if _, err := h.authService.Register(ctx, models.RegisterRequest{Email: req.Email, Password: req.Password}); err != nil {
			status, _ := statusFor(err)
			if status >= fiber.StatusInternalServerError {
				h.logger.WithError(err).Error("Signup failed")
			}
			return h.loginPage(c, status, fiber.Map{"Error": loginMessage(err), "Email": req.Email})
		}
		return h.loginPage(c, fiber.StatusOK, fiber.Map{"Success": "Akun berhasil dibuat, silakan login.", "Email": req.Email})
	}

	user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		status, _ := statusFor(err)
		if errors.Is(err, apperrors.ErrNotFound) {
			status = fiber.StatusUnauthorized
		}
		return h.loginPage(c, status, fiber.Map{"Error": loginMessage(err), "Email": req.Email})
	}

	ch, err := h.authService.IssueChallenge(ctx, user.Email)
	if err != nil {
		return h.loginPage(c, fiber.StatusBadGateway, fiber.Map{"Error": loginMessage(err), "Email": req.Email})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat sesi")
	}
	sess.Set(middleware.SessionOTPToken, ch.Token)
	sess.Set(middleware.SessionOTPEmail, ch.Email)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan sesi")
	}

	return h.render(c, "auth/verify_otp", "Verifikasi OTP", fiber.Map{
		"Success":   "OTP telah dikirim ke email!",
		"OTPEmail":  ch.Email,
		"ExpiresAt": ch.ExpiresAt,
	})
}

func (h *AuthHandler) ShowVerify(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	email, _ := sess.Get(middleware.SessionOTPEmail).(string)
	if email == "" {
		return c.Redirect("/login")
	}
	return h.render(c, "auth/verify_otp", "Verifikasi OTP", fiber.Map{"OTPEmail": email})
}

// VerifyOTP completes the web login. The challenge token never leaves the
// server-side session.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}
	token, _ := sess.Get(middleware.SessionOTPToken).(string)
	email, _ := sess.Get(middleware.SessionOTPEmail).(string)

	user, err := h.authService.VerifyChallenge(c.UserContext(), token, c.FormValue("otp_input"))
	if err != nil {
		status, _ := statusFor(err)
		if errors.Is(err, apperrors.ErrExpired) {
			sess.Delete(middleware.SessionOTPToken)
			sess.Delete(middleware.SessionOTPEmail)
			_ = sess.Save()
			return h.loginPage(c, status, fiber.Map{"Error": loginMessage(err), "Email": email})
		}
		c.Status(status)
		return h.render(c, "auth/verify_otp", "Verifikasi OTP", fiber.Map{"Error": loginMessage(err), "OTPEmail": email})
	}

	if err := sess.Regenerate(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat sesi")
	}
	sess.Delete(middleware.SessionOTPToken)
	sess.Delete(middleware.SessionOTPEmail)
	sess.Set(middleware.SessionUserEmail, user.Email)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionExpiresAt, utils.GetCurrentTimestamp()+h.sessionExpire)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan sesi")
	}
	return c.Redirect("/dashboard")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			h.logger.WithError(err).Warn("Failed to destroy session")
		}
	}
	return c.Redirect("/login")
}

// API

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	user, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		status, _ := statusFor(err)
		return utils.ErrorResponse(c, status, loginMessage(err), err)
	}
	return utils.CreatedResponse(c, "Akun berhasil dibuat, silakan login.", user)
}

// Login checks the password and starts an OTP challenge. The client must send
// the returned token together with the emailed code to Verify.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Email == "" || req.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email dan password wajib diisi.", nil)
	}
	user, err := h.authService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		status, _ := statusFor(err)
		if errors.Is(err, apperrors.ErrNotFound) {
			status = fiber.StatusUnauthorized
		}
		return utils.ErrorResponse(c, status, loginMessage(err), nil)
	}
	ch, err := h.authService.IssueChallenge(c.UserContext(), user.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, loginMessage(err), nil)
	}
	return utils.SuccessResponse(c, "OTP telah dikirim ke email!", models.ChallengeResponse{
		Token:     ch.Token,
		ExpiresAt: ch.ExpiresAt,
	})
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	user, err := h.authService.VerifyChallenge(c.UserContext(), req.Token, req.Code)
	if err != nil {
		status, _ := statusFor(err)
		return utils.ErrorResponse(c, status, loginMessage(err), nil)
	}
	token, err := h.authService.IssueAccessToken(user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate access token", err)
	}
	return utils.SuccessResponse(c, "Login berhasil", models.LoginResponse{AccessToken: token, User: *user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.LocalUserID).(int)
	user, err := h.authService.GetUserByID(c.UserContext(), id)
	if err != nil {
		status, msg := statusFor(err)
		return utils.ErrorResponse(c, status, msg, err)
	}
	return utils.SuccessResponse(c, "User retrieved successfully", user)
}
