package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene el stock actual de un producto en una tienda.
// Si la fila no existe retorna cantidad 0 (la fila se crea perezosamente al escribir).
func (r *InventoryRepo) Get(productID, storeID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, store_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND store_id = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para el
// patrón verificar-y-descontar dentro de la transacción de la venta.
func (r *InventoryRepo) GetForUpdate(productID, storeID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, store_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad (por producto y tienda).
// El CHECK quantity >= 0 de la tabla respalda el invariante que el dominio ya valida.
func (r *InventoryRepo) Upsert(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, inv.ProductID, inv.StoreID, inv.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// ListAll lista todas las filas de inventario (para el rollup de reportes).
func (r *InventoryRepo) ListAll() ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, store_id, quantity, updated_at
		FROM inventory`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var result []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		result = append(result, &inv)
	}
	return result, rows.Err()
}
