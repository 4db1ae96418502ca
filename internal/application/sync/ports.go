// Package sync reconcilia el inventario local contra el feed multi-ubicación
// de la plataforma de comercio externa: sobrescritura unidireccional, eventualmente
// consistente, nunca dentro de transacciones de venta.
package sync

import (
	"context"

	"github.com/shopspring/decimal"
)

// Location ubicación reportada por la plataforma externa.
type Location struct {
	ExternalLocationID string
	Name               string
	Active             bool
}

// Variant variante de un producto externo. ExternalItemID puede venir vacío
// si el listado no lo incluye; en ese caso se resuelve aparte.
type Variant struct {
	ExternalVariantID string
	SKU               string
	Price             decimal.Decimal
	ExternalItemID    string
}

// ProductListing producto del catálogo externo con sus variantes.
type ProductListing struct {
	ExternalProductID string
	Title             string
	Variants          []Variant
}

// InventoryLevel disponibilidad de un inventory item en una ubicación.
type InventoryLevel struct {
	ExternalItemID     string
	ExternalLocationID string
	Available          int64
}

// PlatformClient puerto de salida hacia la plataforma de comercio externa.
// Se asume lenta, con límites de tasa y con fallas parciales: toda llamada
// lleva timeout propio y los errores por lote no abortan la corrida.
type PlatformClient interface {
	ListLocations(ctx context.Context) ([]Location, error)
	ListProducts(ctx context.Context) ([]ProductListing, error)
	// ResolveInventoryItemIDs resuelve variant id -> inventory item id.
	// Es una capacidad por lote para que una implementación pueda agrupar
	// internamente; variantes no resolubles simplemente no aparecen en el mapa.
	ResolveInventoryItemIDs(ctx context.Context, variantIDs []string) (map[string]string, error)
	GetInventoryLevels(ctx context.Context, itemIDs []string) ([]InventoryLevel, error)
}
