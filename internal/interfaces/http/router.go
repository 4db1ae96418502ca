package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/application/sales"
	appsync "github.com/tu-usuario/pos-retail/internal/application/sync"
	"github.com/tu-usuario/pos-retail/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC     *sales.SaleUseCase
	SummaryUC  *appinventory.SummaryUseCase
	Reconciler *appsync.Reconciler
	Importer   *appsync.CatalogImporter
}

// Router registra las rutas de la API. La autenticación vive en un colaborador
// externo (gateway); aquí no hay middleware de auth.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Edit)
	salesGroup.Delete("/:id", saleHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.SummaryUC)
	syncHandler := NewSyncHandler(deps.Reconciler, deps.Importer)
	invGroup := api.Group("/inventory")
	invGroup.Get("/summary", inventoryHandler.GetSummary)
	invGroup.Post("/sync", syncHandler.Sync)
	invGroup.Get("/sync/status", syncHandler.Status)

	api.Post("/platform/import", syncHandler.Import)
}

// respondError mapea el tipo de error de dominio al status HTTP.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: stockErr.Error(),
		})
	}
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: notFoundErr.Error(),
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	}
	if errors.Is(err, domain.ErrSyncInProgress) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "SYNC_IN_PROGRESS", Message: err.Error(),
		})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
