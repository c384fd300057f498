package middleware

import (
	"strings"

	"belutin-web/internal/config"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session and Locals keys shared with the handlers.
const (
	SessionUserEmail = "user_email"
	SessionUserID    = "user_id"
	SessionExpiresAt = "expires_at"
	SessionOTPToken  = "otp_token"
	SessionOTPEmail  = "otp_email"

	LocalUserEmail = "user_email"
	LocalUserID    = "user_id"
)

// AuthMiddleware guards the JSON API with a bearer token.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization header is required", nil)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid authorization header format", nil)
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserEmail, claims.Email)
		return c.Next()
	}
}

// WebAuthMiddleware untuk autentikasi halaman web menggunakan session
func WebAuthMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}

		email, _ := sess.Get(SessionUserEmail).(string)
		if email == "" {
			return c.Redirect("/login")
		}

		if expiresAt, ok := sess.Get(SessionExpiresAt).(int64); ok && expiresAt < utils.GetCurrentTimestamp() {
			_ = sess.Destroy()
			return c.Redirect("/login")
		}

		c.Locals(LocalUserEmail, email)
		c.Locals(LocalUserID, sess.Get(SessionUserID))
		return c.Next()
	}
}

// GuestMiddleware untuk halaman yang hanya bisa diakses saat belum login
func GuestMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Next()
		}
		if email, _ := sess.Get(SessionUserEmail).(string); email != "" {
			return c.Redirect("/")
		}
		return c.Next()
	}
}

// CurrentUser is the email of the authenticated user, set by either auth middleware.
func CurrentUser(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalUserEmail).(string)
	return email
}
