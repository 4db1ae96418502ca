package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// Umbral de stock bajo: 0 < qty < lowStockThreshold.
const lowStockThreshold = 5

// SummaryUseCase rollup de inventario por tienda para reportes.
// Función pura del estado del libro + catálogo: no escribe nada.
type SummaryUseCase struct {
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *SummaryUseCase {
	return &SummaryUseCase{invRepo: invRepo, productRepo: productRepo, storeRepo: storeRepo}
}

// GetSummary agrupa las filas de inventario de productos activos por tienda activa:
// filas, productos con stock, cantidad total, valor total (Σ qty × precio),
// stock bajo y agotados; más totales globales. Tiendas ordenadas por cantidad descendente.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	stores, err := uc.storeRepo.ListActive()
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListActive()
	if err != nil {
		return nil, err
	}
	rows, err := uc.invRepo.ListAll()
	if err != nil {
		return nil, err
	}

	priceByProduct := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		priceByProduct[p.ID] = p.Price
	}
	summaryByStore := make(map[string]*dto.StoreSummary, len(stores))
	for _, s := range stores {
		summaryByStore[s.ID] = &dto.StoreSummary{StoreID: s.ID, StoreName: s.Name}
	}

	for _, row := range rows {
		// Filas de productos inactivos o de tiendas inactivas no cuentan en el reporte.
		price, ok := priceByProduct[row.ProductID]
		if !ok {
			continue
		}
		summary, ok := summaryByStore[row.StoreID]
		if !ok {
			continue
		}
		summary.TotalProductRows++
		summary.TotalQuantity += row.Quantity
		summary.TotalValue = summary.TotalValue.Add(price.Mul(decimal.NewFromInt(row.Quantity)))
		switch {
		case row.Quantity == 0:
			summary.OutOfStockCount++
		case row.Quantity < lowStockThreshold:
			summary.ProductsWithStock++
			summary.LowStockCount++
		default:
			summary.ProductsWithStock++
		}
	}

	resp := &dto.InventorySummaryResponse{
		Stores:     make([]dto.StoreSummary, 0, len(summaryByStore)),
		TotalValue: decimal.Zero,
	}
	for _, summary := range summaryByStore {
		summary.TotalValue = summary.TotalValue.Round(2)
		resp.Stores = append(resp.Stores, *summary)
		resp.TotalQuantity += summary.TotalQuantity
		resp.TotalValue = resp.TotalValue.Add(summary.TotalValue)
		resp.LowStockCount += summary.LowStockCount
		resp.OutOfStockCount += summary.OutOfStockCount
	}
	sort.Slice(resp.Stores, func(i, j int) bool {
		if resp.Stores[i].TotalQuantity != resp.Stores[j].TotalQuantity {
			return resp.Stores[i].TotalQuantity > resp.Stores[j].TotalQuantity
		}
		return resp.Stores[i].StoreName < resp.Stores[j].StoreName
	})
	return resp, nil
}
