// Package sales coordina las operaciones de venta: cada create/edit/delete corre en
// una sola transacción que compone libro de stock, secuenciador de facturas y cliente.
package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-retail/internal/application/dto"
	appinventory "github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/pricing"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// SaleUseCase orquesta create/edit/delete de ventas como unidades atómicas.
type SaleUseCase struct {
	txRunner     SaleTxRunner
	storeRepo    repository.StoreRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewSaleUseCase construye el caso de uso. saleRepo y customerRepo se usan
// solo para lecturas fuera de transacción (GetSale); dentro de las operaciones
// se usan los repos atados a la tx que entrega el runner.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	storeRepo repository.StoreRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		storeRepo:    storeRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// validateItems valida la lista de ítems de un request de venta.
func validateItems(items []dto.SaleItemRequest) error {
	if len(items) == 0 {
		return &domain.ValidationError{Message: "la venta debe tener al menos un ítem"}
	}
	for _, item := range items {
		if item.ProductID == "" {
			return &domain.ValidationError{Message: "ítem sin producto"}
		}
		if item.Quantity < 1 {
			return &domain.ValidationError{Message: "cantidad debe ser al menos 1"}
		}
		if item.Discount.IsNegative() {
			return &domain.ValidationError{Message: "descuento negativo"}
		}
	}
	return nil
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentCard, entity.PaymentUPI:
		return true
	}
	return false
}

// buildItems ejecuta el paso por ítem de una venta con los repos de la transacción:
// cargar producto, reservar stock y construir el snapshot de línea, acumulando totales.
func buildItems(
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	saleID, storeID string,
	items []dto.SaleItemRequest,
	now time.Time,
) ([]*entity.SaleItem, pricing.Totals, error) {
	var totals pricing.Totals
	built := make([]*entity.SaleItem, 0, len(items))
	for _, req := range items {
		product, err := productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, totals, err
		}
		if product == nil {
			return nil, totals, &domain.NotFoundError{Resource: "producto", ID: req.ProductID}
		}
		if err := appinventory.CheckAndReserve(invRepo, product, storeID, req.Quantity, now); err != nil {
			return nil, totals, err
		}
		line, err := pricing.ComputeLine(product.Price, req.Discount, req.Quantity, product.TaxRate)
		if err != nil {
			return nil, totals, err
		}
		totals.Add(line)
		built = append(built, &entity.SaleItem{
			ID:              uuid.New().String(),
			SaleID:          saleID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			SKU:             product.SKU,
			Quantity:        req.Quantity,
			UnitPrice:       product.Price,
			Discount:        req.Discount,
			DiscountedPrice: product.Price.Sub(req.Discount),
			TaxRate:         product.TaxRate,
			TaxAmount:       line.TaxAmount,
			LineTotal:       line.LineTotal,
		})
	}
	return built, totals, nil
}

// upsertCustomerByPhone busca el cliente por teléfono; si no existe lo crea,
// si existe mezcla solo los campos que vienen no vacíos. El teléfono nunca cambia.
func upsertCustomerByPhone(customerRepo repository.CustomerRepository, info dto.CustomerInfo, now time.Time) (*entity.Customer, error) {
	customer, err := customerRepo.GetByPhone(info.Phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{
			ID:             uuid.New().String(),
			Phone:          info.Phone,
			Name:           info.Name,
			Address:        info.Address,
			TaxID:          info.TaxID,
			TotalPurchases: decimal.Zero,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := customerRepo.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}
	if info.Name != "" {
		customer.Name = info.Name
	}
	if info.Address != "" {
		customer.Address = info.Address
	}
	if info.TaxID != "" {
		customer.TaxID = info.TaxID
	}
	customer.UpdatedAt = now
	if err := customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// applyTotals vuelca el acumulador en la cabecera (redondeo solo en presentación, no aquí).
func applyTotals(sale *entity.Sale, totals pricing.Totals) {
	sale.Subtotal = totals.Subtotal
	sale.TotalDiscount = totals.TotalDiscount
	sale.TotalTax = totals.TotalTax
	sale.TotalAmount = totals.TotalAmount()
}

func toResponse(sale *entity.Sale, customerName string, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		StoreID:       sale.StoreID,
		CashierID:     sale.CashierID,
		CustomerID:    sale.CustomerID,
		CustomerName:  customerName,
		Subtotal:      sale.Subtotal.Round(2),
		TotalDiscount: sale.TotalDiscount.Round(2),
		TotalTax:      sale.TotalTax.Round(2),
		TotalAmount:   sale.TotalAmount.Round(2),
		PaymentMethod: sale.PaymentMethod,
		Date:          sale.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			SKU:             it.SKU,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice.Round(2),
			Discount:        it.Discount.Round(2),
			DiscountedPrice: it.DiscountedPrice.Round(2),
			TaxRate:         it.TaxRate,
			TaxAmount:       it.TaxAmount.Round(2),
			LineTotal:       it.LineTotal.Round(2),
		})
	}
	return resp
}
