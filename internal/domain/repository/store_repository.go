package repository

import "github.com/tu-usuario/pos-retail/internal/domain/entity"

// StoreRepository define el puerto de acceso a tiendas.
type StoreRepository interface {
	GetByID(id string) (*entity.Store, error)
	ListActive() ([]*entity.Store, error)
	// ListActiveWithExternalLocation retorna las tiendas activas con ubicación
	// externa conocida. Usado por la sincronización.
	ListActiveWithExternalLocation() ([]*entity.Store, error)
	UpdateExternalLocation(id, externalLocationID string) error
}
