package handler

import (
	"fmt"

	"belutin-web/internal/models"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const openingBalancePath = "/saldo_awal"

type OpeningBalanceHandler struct {
	base
	opening *service.OpeningBalanceService
}

func NewOpeningBalanceHandler(opening *service.OpeningBalanceService, store *session.Store, logger *logrus.Logger) *OpeningBalanceHandler {
	return &OpeningBalanceHandler{base: base{store: store, logger: logger}, opening: opening}
}

func (h *OpeningBalanceHandler) Show(c *fiber.Ctx) error {
	view, err := h.opening.View(c.UserContext())
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "opening/index", "Saldo Awal", view, fiber.Map{
		"View":     view,
		"Accounts": h.opening.Accounts(),
	})
}

// Post dispatches on the form's action field: delete_one, reset_all or, by
// default, adding a balance.
func (h *OpeningBalanceHandler) Post(c *fiber.Ctx) error {
	switch c.FormValue("action") {
	case "delete_one":
		return h.Delete(c)
	case "reset_all":
		return h.Reset(c)
	}
	return h.Create(c)
}

func (h *OpeningBalanceHandler) Create(c *fiber.Ctx) error {
	var req models.OpeningBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, openingBalancePath, errBadForm)
	}
	ob, err := h.opening.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, openingBalancePath, err)
	}
	return h.done(c, openingBalancePath, fmt.Sprintf("Saldo awal %s berhasil disimpan!", ob.AccountName), ob)
}

func (h *OpeningBalanceHandler) Delete(c *fiber.Ctx) error {
	name := "id"
	if !isAPI(c) {
		name = "entry_id"
	}
	id, err := paramID(c, name)
	if err != nil {
		return h.fail(c, openingBalancePath, err)
	}
	if err := h.opening.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, openingBalancePath, err)
	}
	return h.done(c, openingBalancePath, "Saldo awal berhasil dihapus!", nil)
}

func (h *OpeningBalanceHandler) Reset(c *fiber.Ctx) error {
	n, err := h.opening.ResetAll(c.UserContext())
	if err != nil {
		return h.fail(c, openingBalancePath, err)
	}
	return h.done(c, openingBalancePath, fmt.Sprintf("%d saldo awal berhasil dihapus!", n), fiber.Map{"deleted": n})
}
