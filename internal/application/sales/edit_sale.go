package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// EditSale reemplaza por completo los ítems y totales de una venta (operación privilegiada).
// Dentro de una sola transacción: restaura el stock de los ítems originales, borra las
// líneas, re-reserva contra la línea base restaurada y sobreescribe la cabecera.
// Si el nuevo conjunto excede el stock disponible la operación falla con
// InsufficientStockError y el rollback deshace restauraciones, borrados y nuevas reservas.
func (uc *SaleUseCase) EditSale(ctx context.Context, saleID string, in dto.EditSaleRequest) (*dto.SaleResponse, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	var newItems []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		_ repository.SequenceRepository,
	) error {
		var err error
		sale, err = saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Resource: "venta", ID: saleID}
		}
		oldItems, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		oldTotal := sale.TotalAmount
		now := time.Now()

		// Deshacer los descuentos originales antes de reservar el nuevo conjunto.
		for _, item := range oldItems {
			if err := appinventory.Restore(invRepo, item.ProductID, sale.StoreID, item.Quantity, now); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItems(saleID); err != nil {
			return err
		}

		built, totals, err := buildItems(invRepo, productRepo, saleID, sale.StoreID, in.Items, now)
		if err != nil {
			return err
		}
		newItems = built

		applyTotals(sale, totals)
		if err := saleRepo.UpdateTotals(sale); err != nil {
			return err
		}
		for _, item := range newItems {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// Ajustar el acumulado del cliente por la diferencia de totales.
		customer, err := customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			customer.TotalPurchases = customer.TotalPurchases.Sub(oldTotal).Add(sale.TotalAmount)
			customer.UpdatedAt = now
			return customerRepo.Update(customer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, "", newItems), nil
}
