package handler

import (
	"fmt"

	"belutin-web/internal/models"
	"belutin-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/sirupsen/logrus"
)

const (
	adjustmentInputPath = "/jurnal_penyesuaian/input"
	adjustmentViewPath  = "/jurnal_penyesuaian/view"
)

type AdjustmentHandler struct {
	base
	adjustments *service.AdjustmentService
}

func NewAdjustmentHandler(adjustments *service.AdjustmentService, store *session.Store, logger *logrus.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{base: base{store: store, logger: logger}, adjustments: adjustments}
}

func (h *AdjustmentHandler) Index(c *fiber.Ctx) error {
	return h.page(c, "adjustments/index", "Jurnal Penyesuaian", service.AdjustmentTemplates, fiber.Map{
		"Templates": service.AdjustmentTemplates,
	})
}

func (h *AdjustmentHandler) ShowInput(c *fiber.Ctx) error {
	return h.render(c, "adjustments/input", "Input Jurnal Penyesuaian", fiber.Map{
		"Templates": service.AdjustmentTemplates,
		"Selected":  c.Query("jurnal_type"),
	})
}

func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var req models.AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, adjustmentInputPath, errBadForm)
	}
	rows, err := h.adjustments.Apply(c.UserContext(), owner(c), req)
	if err != nil {
		return h.fail(c, adjustmentInputPath, err)
	}
	return h.done(c, adjustmentViewPath, fmt.Sprintf("%d entri jurnal penyesuaian berhasil disimpan!", len(rows)), rows)
}

func (h *AdjustmentHandler) View(c *fiber.Ctx) error {
	view, err := h.adjustments.View(c.UserContext(), owner(c))
	if err != nil {
		return h.failRead(c, err)
	}
	return h.page(c, "adjustments/view", "Daftar Jurnal Penyesuaian", view, fiber.Map{"View": view})
}

func (h *AdjustmentHandler) Delete(c *fiber.Ctx) error {
	name := "id"
	if !isAPI(c) {
		name = "entry_id"
	}
	id, err := paramID(c, name)
	if err != nil {
		return h.fail(c, adjustmentViewPath, err)
	}
	if err := h.adjustments.Delete(c.UserContext(), owner(c), id); err != nil {
		return h.fail(c, adjustmentViewPath, err)
	}
	return h.done(c, adjustmentViewPath, "Entry berhasil dihapus!", nil)
}
