package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// CreateSale crea una venta en una sola transacción: upsert de cliente por teléfono,
// reserva de stock por ítem, snapshot de líneas, número de factura del contador por
// tienda y persistencia de cabecera + líneas. Cualquier error hace rollback de todo.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.StoreID == "" {
		return nil, &domain.ValidationError{Message: "store_id es obligatorio"}
	}
	if in.Customer.Phone == "" {
		return nil, &domain.ValidationError{Message: "teléfono del cliente es obligatorio"}
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = entity.PaymentCash
	}
	if !validPaymentMethod(in.PaymentMethod) {
		return nil, &domain.ValidationError{Message: "método de pago inválido: " + in.PaymentMethod}
	}

	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, &domain.NotFoundError{Resource: "tienda", ID: in.StoreID}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var items []*entity.SaleItem
	var customerName string

	err = uc.txRunner.RunSale(ctx, func(
		invRepo repository.InventoryRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		seqRepo repository.SequenceRepository,
	) error {
		customer, err := upsertCustomerByPhone(customerRepo, in.Customer, now)
		if err != nil {
			return err
		}
		customerName = customer.Name

		built, totals, buildErr := buildItems(invRepo, productRepo, saleID, in.StoreID, in.Items, now)
		if buildErr != nil {
			return buildErr
		}
		items = built

		// Consecutivo atómico por tienda, dentro de esta misma transacción.
		seq, err := seqRepo.NextForStore(in.StoreID)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			ID:            saleID,
			InvoiceNumber: FormatInvoiceNumber(store.Name, seq),
			StoreID:       in.StoreID,
			CashierID:     in.CashierID,
			CustomerID:    customer.ID,
			PaymentMethod: in.PaymentMethod,
			CreatedAt:     now,
		}
		applyTotals(sale, totals)

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// Acumulados del cliente: total comprado y fecha de última compra.
		customer.TotalPurchases = customer.TotalPurchases.Add(sale.TotalAmount)
		customer.LastPurchaseDate = &now
		customer.UpdatedAt = now
		return customerRepo.Update(customer)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(sale, customerName, items), nil
}
