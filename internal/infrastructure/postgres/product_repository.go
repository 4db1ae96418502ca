package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, category, price, tax_rate, active,
	COALESCE(external_product_id, ''), COALESCE(external_variant_id, ''), COALESCE(external_item_id, ''),
	created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.TaxRate, &p.Active,
		&p.ExternalProductID, &p.ExternalVariantID, &p.ExternalItemID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU; nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var result []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ListActive lista los productos activos.
func (r *ProductRepo) ListActive() ([]*entity.Product, error) {
	return r.list(`SELECT ` + productColumns + ` FROM products WHERE active ORDER BY name`)
}

// ListActiveWithExternalVariant lista los productos activos vinculados a la plataforma externa.
func (r *ProductRepo) ListActiveWithExternalVariant() ([]*entity.Product, error) {
	return r.list(`SELECT ` + productColumns + ` FROM products
		WHERE active AND external_variant_id IS NOT NULL AND external_variant_id <> ''`)
}

// UpdateExternalIDs fija los identificadores de la plataforma externa.
func (r *ProductRepo) UpdateExternalIDs(id, externalProductID, externalVariantID, externalItemID string) error {
	query := `
		UPDATE products
		SET external_product_id = NULLIF($2, ''),
		    external_variant_id = NULLIF($3, ''),
		    external_item_id = NULLIF($4, ''),
		    updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, externalProductID, externalVariantID, externalItemID)
	if err != nil {
		return fmt.Errorf("update product external ids: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update product external ids: producto %s no existe", id)
	}
	return nil
}
