package handler

import (
	"errors"
	"strconv"
	"strings"

	"belutin-web/internal/apperrors"
	"belutin-web/internal/middleware"
	"belutin-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const (
	flashSuccess = "flash_success"
	flashError   = "flash_error"
	layout       = "layouts/main"
)

var errBadForm = apperrors.Validation("Form tidak valid")

// base carries what every page handler needs. The same handler serves the
// HTML pages and the /api/v1 JSON routes; store is only touched for pages.
type base struct {
	store  *session.Store
	logger *logrus.Logger
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func owner(c *fiber.Ctx) string {
	return middleware.CurrentUser(c)
}

// statusFor maps service errors onto HTTP status codes and user-facing text.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound, "Data tidak ditemukan"
	case errors.Is(err, apperrors.ErrDuplicate):
		return fiber.StatusConflict, "Data sudah ada"
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrInvalidOTP):
		return fiber.StatusUnauthorized, "Autentikasi gagal"
	case errors.Is(err, apperrors.ErrExpired):
		return fiber.StatusGone, "Kode sudah kedaluwarsa"
	}
	return fiber.StatusInternalServerError, "Terjadi kesalahan pada server"
}

// render shows a page inside the main layout, adding the common fields and any
// pending flash messages.
func (b *base) render(c *fiber.Ctx, view, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["User"] = owner(c)
	data["Path"] = c.Path()
	data["Today"] = utils.Today()
	if b.store != nil {
		if sess, err := b.store.Get(c); err == nil {
			popped := false
			for key, field := range map[string]string{flashSuccess: "Success", flashError: "Error"} {
				if msg, ok := sess.Get(key).(string); ok {
					data[field] = msg
					sess.Delete(key)
					popped = true
				}
			}
			// Only save when something changed, so anonymous visitors get no cookie.
			if popped {
				if err := sess.Save(); err != nil {
					b.logger.WithError(err).Warn("Failed to save session after reading flash")
				}
			}
		}
	}
	return c.Render(view, data, layout)
}

// page answers a GET: JSON for the API, a rendered view otherwise.
func (b *base) page(c *fiber.Ctx, view, title string, payload interface{}, data fiber.Map) error {
	if isAPI(c) {
		return utils.SuccessResponse(c, title, payload)
	}
	return b.render(c, view, title, data)
}

func (b *base) flash(c *fiber.Ctx, key, msg string) {
	sess, err := b.store.Get(c)
	if err != nil {
		b.logger.WithError(err).Warn("Failed to load session for flash")
		return
	}
	sess.Set(key, msg)
	if err := sess.Save(); err != nil {
		b.logger.WithError(err).Warn("Failed to save flash")
	}
}

// done finishes a successful write.
func (b *base) done(c *fiber.Ctx, redirect, msg string, data interface{}) error {
	if isAPI(c) {
		if c.Method() == fiber.MethodPost {
			return utils.CreatedResponse(c, msg, data)
		}
		return utils.SuccessResponse(c, msg, data)
	}
	b.flash(c, flashSuccess, msg)
	return c.Redirect(redirect)
}

// fail finishes a failed write. Validation messages reach the user verbatim.
func (b *base) fail(c *fiber.Ctx, redirect string, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		b.logger.WithError(err).WithFields(logrus.Fields{
			"path":  c.Path(),
			"owner": owner(c),
		}).Error("Request failed")
	}
	if isAPI(c) {
		return utils.ErrorResponse(c, status, msg, err)
	}
	b.flash(c, flashError, msg)
	return c.Redirect(redirect)
}

// failRead is fail for GET requests that have nowhere to redirect to.
func (b *base) failRead(c *fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		b.logger.WithError(err).WithField("path", c.Path()).Error("Failed to load page")
	}
	if isAPI(c) {
		return utils.ErrorResponse(c, status, msg, err)
	}
	return fiber.NewError(status, msg)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	if raw == "" {
		raw = c.FormValue(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("ID tidak valid")
	}
	return id, nil
}
