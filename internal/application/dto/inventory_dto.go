package dto

import "github.com/shopspring/decimal"

// StoreSummary rollup de inventario de una tienda.
type StoreSummary struct {
	StoreID           string          `json:"store_id"`
	StoreName         string          `json:"store_name"`
	TotalProductRows  int             `json:"total_product_rows"`
	ProductsWithStock int             `json:"products_with_stock"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockCount     int             `json:"low_stock_count"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
}

// InventorySummaryResponse rollup por tienda más totales globales.
// Las tiendas vienen ordenadas por TotalQuantity descendente.
type InventorySummaryResponse struct {
	Stores          []StoreSummary  `json:"stores"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}
