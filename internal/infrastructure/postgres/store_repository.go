package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

const storeColumns = `id, name, COALESCE(external_location_id, ''), active, created_at, updated_at`

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Name, &s.ExternalLocationID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene una tienda por ID; nil si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := scanStore(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

func (r *StoreRepo) list(query string) ([]*entity.Store, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var result []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListActive lista las tiendas activas.
func (r *StoreRepo) ListActive() ([]*entity.Store, error) {
	return r.list(`SELECT ` + storeColumns + ` FROM stores WHERE active ORDER BY name`)
}

// ListActiveWithExternalLocation lista las tiendas activas con ubicación externa conocida.
func (r *StoreRepo) ListActiveWithExternalLocation() ([]*entity.Store, error) {
	return r.list(`SELECT ` + storeColumns + ` FROM stores
		WHERE active AND external_location_id IS NOT NULL AND external_location_id <> ''`)
}

// UpdateExternalLocation vincula la tienda con una ubicación de la plataforma externa.
func (r *StoreRepo) UpdateExternalLocation(id, externalLocationID string) error {
	query := `
		UPDATE stores
		SET external_location_id = NULLIF($2, ''), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, externalLocationID)
	if err != nil {
		return fmt.Errorf("update store external location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update store external location: tienda %s no existe", id)
	}
	return nil
}
