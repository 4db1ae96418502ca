// Package inventory contiene las operaciones del libro de stock por (producto, tienda)
// y el rollup de inventario para reportes.
package inventory

import (
	"time"

	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// CheckAndReserve verifica y descuenta stock en una sola unidad atómica.
// Debe ejecutarse con los repositorios de la transacción del llamador: la fila se bloquea
// (SELECT FOR UPDATE) para que dos ventas concurrentes no lean la misma cantidad y ambas
// pasen cuando solo queda una unidad. Falla con InsufficientStockError, nunca recorta.
func CheckAndReserve(invRepo repository.InventoryRepository, product *entity.Product, storeID string, qty int64, now time.Time) error {
	if qty < 1 {
		return &domain.ValidationError{Message: "cantidad debe ser al menos 1"}
	}
	inv, err := invRepo.GetForUpdate(product.ID, storeID)
	if err != nil {
		return err
	}
	if inv.Quantity < qty {
		return &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   qty,
			Available:   inv.Quantity,
		}
	}
	inv.Quantity -= qty
	inv.UpdatedAt = now
	return invRepo.Upsert(inv)
}

// Restore devuelve qty unidades al stock (anulación o edición de venta).
// Crea la fila si no existe: la venta original pudo haber nacido de una fila
// creada perezosamente.
func Restore(invRepo repository.InventoryRepository, productID, storeID string, qty int64, now time.Time) error {
	if qty < 1 {
		return &domain.ValidationError{Message: "cantidad debe ser al menos 1"}
	}
	inv, err := invRepo.GetForUpdate(productID, storeID)
	if err != nil {
		return err
	}
	inv.Quantity += qty
	inv.UpdatedAt = now
	return invRepo.Upsert(inv)
}

// UpsertAbsolute sobreescribe la cantidad con un valor reportado externamente.
// Solo lo usa la sincronización: no son deltas, es last-writer-wins.
func UpsertAbsolute(invRepo repository.InventoryRepository, productID, storeID string, qty int64, now time.Time) error {
	if qty < 0 {
		return &domain.ValidationError{Message: "cantidad no puede ser negativa"}
	}
	return invRepo.Upsert(&entity.Inventory{
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  qty,
		UpdatedAt: now,
	})
}
