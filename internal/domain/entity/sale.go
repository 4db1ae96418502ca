package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash = "CASH"
	PaymentCard = "CARD"
	PaymentUPI  = "UPI"
)

// Sale cabecera de una venta. Los totales son agregados de sus SaleItem y
// solo cambian a través de la operación de edición, que reemplaza ítems y totales completos.
// InvoiceNumber es único, con secuencia por tienda.
type Sale struct {
	ID            string
	InvoiceNumber string
	StoreID       string
	CashierID     string
	CustomerID    string
	Subtotal      decimal.Decimal // Σ lineMRP
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal // informativo: el impuesto ya está dentro del total
	TotalAmount   decimal.Decimal // Subtotal - TotalDiscount
	PaymentMethod string
	CreatedAt     time.Time
}

// SaleItem línea de venta con snapshot inmutable de precios al momento de la transacción.
// Nunca se recalcula desde el Product vivo: cambios de precio posteriores
// no alteran facturas históricas.
type SaleItem struct {
	ID              string
	SaleID          string
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        int64
	UnitPrice       decimal.Decimal // MRP unitario al momento de la venta
	Discount        decimal.Decimal // descuento por unidad
	DiscountedPrice decimal.Decimal // UnitPrice - Discount
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal // impuesto extraído de la línea (ya incluido en LineTotal)
	LineTotal       decimal.Decimal
}
