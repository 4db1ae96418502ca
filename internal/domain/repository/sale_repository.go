package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// SaleRepository define el puerto de acceso a ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	// UpdateTotals sobreescribe los totales de la cabecera (operación de edición).
	UpdateTotals(sale *entity.Sale) error
	DeleteItems(saleID string) error
	Delete(id string) error
}

// SequenceRepository asigna consecutivos de factura por tienda.
// NextForStore debe ser atómico dentro de la transacción de la venta:
// dos ventas concurrentes en la misma tienda nunca reciben el mismo número.
type SequenceRepository interface {
	NextForStore(storeID string) (int64, error)
}
