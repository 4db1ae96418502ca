package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
)

// InventoryHandler maneja las consultas de inventario.
type InventoryHandler struct {
	summaryUC *appinventory.SummaryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(summaryUC *appinventory.SummaryUseCase) *InventoryHandler {
	return &InventoryHandler{summaryUC: summaryUC}
}

// GetSummary rollup de inventario por tienda más totales globales.
func (h *InventoryHandler) GetSummary(c *fiber.Ctx) error {
	resp, err := h.summaryUC.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
