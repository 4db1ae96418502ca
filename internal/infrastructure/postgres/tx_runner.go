package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/pos-retail/internal/application/sales"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// Ensure TxRunner implementa sales.SaleTxRunner.
var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con los repos que necesita una venta, ejecuta fn
// y hace Commit o Rollback. El descuento de stock, el consecutivo de factura y las
// escrituras de venta/cliente comparten la misma unidad atómica: si algo falla
// (incluida la persistencia de la factura) el rollback también revierte el descuento.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	productRepo := NewProductRepository(tx)
	customerRepo := NewCustomerRepository(tx)
	saleRepo := NewSaleRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(invRepo, productRepo, customerRepo, saleRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
