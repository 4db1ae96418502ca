package sales

import (
	"context"

	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción con los repositorios
// que necesita una venta. Cualquier error retornado por fn hace rollback de todo:
// descuentos de stock, upsert de cliente y escrituras parciales.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
