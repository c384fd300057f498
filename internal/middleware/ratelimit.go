package middleware

import (
	"strconv"

	"belutin-web/internal/metrics"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewOTPLimiter builds a per-IP limiter from a formatted rate such as "5-M".
func NewOTPLimiter(rate string) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), r), nil
}

// RateLimit rejects requests once the client IP has used up its quota. Only
// POST requests count, so the form itself can always be shown.
func RateLimit(l *limiter.Limiter, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		ctx, err := l.Get(c.UserContext(), c.IP())
		if err != nil {
			logger.WithError(err).Error("Rate limiter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			metrics.OTPChallenges.WithLabelValues("throttled").Inc()
			logger.WithField("ip", c.IP()).Warn("OTP verification throttled")
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, "Terlalu banyak percobaan. Coba lagi nanti.", nil)
		}
		return c.Next()
	}
}
