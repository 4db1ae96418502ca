package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico de facturas por tienda.
// Reemplaza el esquema contar-y-usar: el upsert con RETURNING toma el lock de fila,
// así que dos ventas concurrentes en la misma tienda serializan aquí y nunca
// reciben el mismo consecutivo.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Usar siempre con la tx de la venta.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextForStore retorna el siguiente consecutivo para la tienda, creando la fila
// del contador en la primera venta.
func (r *SequenceRepo) NextForStore(storeID string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (store_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (store_id)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return n, nil
}
