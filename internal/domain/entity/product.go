package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (multi-tienda).
// Price es precio de venta con impuesto incluido (MRP); TaxRate es porcentaje (ej. 18 = 18%).
// Los identificadores External* vinculan el producto con la plataforma de comercio externa;
// vacíos significa que el producto no está sincronizado.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Category          string
	Price             decimal.Decimal // precio de venta con impuesto incluido
	TaxRate           decimal.Decimal // porcentaje: 0, 5, 12, 18, 28
	Active            bool
	ExternalProductID string
	ExternalVariantID string
	ExternalItemID    string // inventory item id de la plataforma (resuelto desde la variante)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
