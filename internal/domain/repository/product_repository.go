package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// ProductRepository define el puerto de acceso al catálogo de productos.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	ListActive() ([]*entity.Product, error)
	// ListActiveWithExternalVariant retorna los productos activos vinculados a la
	// plataforma externa (external_variant_id no vacío). Usado por la sincronización.
	ListActiveWithExternalVariant() ([]*entity.Product, error)
	// UpdateExternalIDs fija los identificadores de la plataforma externa.
	UpdateExternalIDs(id, externalProductID, externalVariantID, externalItemID string) error
}
