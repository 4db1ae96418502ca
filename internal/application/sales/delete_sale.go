package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// DeleteSale anula una venta: restaura el stock de cada línea, borra líneas y cabecera,
// todo en una transacción. Retorna el número de factura anulado.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, saleID string) (*dto.DeleteSaleResponse, error) {
	var invoiceNumber string

	err := uc.txRunner.RunSale(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		_ repository.SequenceRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return &domain.NotFoundError{Resource: "venta", ID: saleID}
		}
		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			if err := appinventory.Restore(invRepo, item.ProductID, sale.StoreID, item.Quantity, now); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteItems(saleID); err != nil {
			return err
		}
		if err := saleRepo.Delete(saleID); err != nil {
			return err
		}
		invoiceNumber = sale.InvoiceNumber

		// La anulación también revierte el acumulado del cliente.
		customer, err := customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			customer.TotalPurchases = customer.TotalPurchases.Sub(sale.TotalAmount)
			customer.UpdatedAt = now
			return customerRepo.Update(customer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteSaleResponse{InvoiceNumber: invoiceNumber}, nil
}

// GetSale obtiene una venta con sus líneas (lectura fuera de transacción).
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Resource: "venta", ID: saleID}
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, err := uc.customerRepo.GetByID(sale.CustomerID); err == nil && customer != nil {
		customerName = customer.Name
	}
	return toResponse(sale, customerName, items), nil
}
