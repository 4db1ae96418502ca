package dto

// SyncResultResponse resumen de una corrida de sincronización de inventario.
// La corrida siempre "completa": los errores por lote o por par (producto, tienda)
// se acumulan aquí en lugar de abortar.
type SyncResultResponse struct {
	TotalStoresConsidered   int      `json:"total_stores_considered"`
	TotalProductsConsidered int      `json:"total_products_considered"`
	UpdatedCount            int      `json:"updated_count"`
	Errors                  []string `json:"errors"`
}

// SyncStatusResponse estado observable de la sincronización.
type SyncStatusResponse struct {
	Status     string `json:"status"` // idle | syncing | failed
	LastSyncAt string `json:"last_sync_at,omitempty"`
	LastError  string `json:"last_error,omitempty"`
}

// ImportResultResponse resumen de la importación de catálogo desde la plataforma externa.
type ImportResultResponse struct {
	StoresLinked   int      `json:"stores_linked"`
	ProductsLinked int      `json:"products_linked"`
	Errors         []string `json:"errors"`
}
