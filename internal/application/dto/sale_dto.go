package dto

import "github.com/shopspring/decimal"

// CustomerInfo datos del cliente en el request de venta.
// El teléfono es la llave de upsert; los demás campos solo sobreescriben si vienen no vacíos.
type CustomerInfo struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// SaleItemRequest ítem solicitado en una venta.
// Discount es descuento por unidad; cero si no viene.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest request para crear una venta.
type CreateSaleRequest struct {
	StoreID       string            `json:"store_id"`
	CashierID     string            `json:"cashier_id"`
	PaymentMethod string            `json:"payment_method"`
	Customer      CustomerInfo      `json:"customer"`
	Items         []SaleItemRequest `json:"items"`
}

// EditSaleRequest request para editar una venta (operación privilegiada):
// reemplaza por completo ítems y totales.
type EditSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta en respuestas (montos redondeados a 2 decimales).
type SaleItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	StoreID       string             `json:"store_id"`
	CashierID     string             `json:"cashier_id"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
	TotalTax      decimal.Decimal    `json:"total_tax"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Date          string             `json:"date"`
	Items         []SaleItemResponse `json:"items"`
}

// DeleteSaleResponse respuesta de anulación de venta.
type DeleteSaleResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}
