package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente. El teléfono es la llave natural de deduplicación:
// cada venta hace upsert por teléfono y acumula TotalPurchases/LastPurchaseDate.
type Customer struct {
	ID               string
	Phone            string
	Name             string
	Address          string
	TaxID            string
	TotalPurchases   decimal.Decimal
	LastPurchaseDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
