package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// InventoryRepository define el puerto para consultar/actualizar stock por tienda+producto.
// Usado dentro de transacciones para garantizar consistencia; si la fila no existe,
// Get y GetForUpdate retornan una fila con Quantity = 0 (se crea perezosamente al escribir).
type InventoryRepository interface {
	Get(productID, storeID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para el patrón leer-verificar-escribir.
	GetForUpdate(productID, storeID string) (*entity.Inventory, error)
	Upsert(inv *entity.Inventory) error
	ListAll() ([]*entity.Inventory, error)
}
