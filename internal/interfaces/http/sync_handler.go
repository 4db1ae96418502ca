package http

import (
	"github.com/gofiber/fiber/v2"

	appsync "github.com/tu-usuario/pos-retail/internal/application/sync"
)

// SyncHandler maneja la sincronización contra la plataforma externa.
type SyncHandler struct {
	reconciler *appsync.Reconciler
	importer   *appsync.CatalogImporter
}

// NewSyncHandler construye el handler.
func NewSyncHandler(reconciler *appsync.Reconciler, importer *appsync.CatalogImporter) *SyncHandler {
	return &SyncHandler{reconciler: reconciler, importer: importer}
}

// Sync dispara una corrida de reconciliación. La corrida completa aun con fallas
// parciales: las fallas por lote o por par vienen en la lista de errores del resumen.
// Un disparo con otra corrida en curso responde 409.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	resp, err := h.reconciler.SyncInventory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Status estado observable de la sincronización (idle | syncing | failed).
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.reconciler.Status())
}

// Import vincula tiendas y productos locales con el catálogo de la plataforma.
func (h *SyncHandler) Import(c *fiber.Ctx) error {
	resp, err := h.importer.ImportCatalog(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
