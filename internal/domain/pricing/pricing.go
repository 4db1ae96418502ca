// Package pricing calcula el desglose financiero de líneas de venta con
// precio impuesto-incluido (MRP): el impuesto se extrae hacia atrás, nunca se suma.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-retail/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineBreakdown desglose de una línea de venta.
// LineTotal == DiscountedMRP: el impuesto ya viene incluido en el precio.
type LineBreakdown struct {
	LineMRP       decimal.Decimal // unitPrice * quantity
	LineDiscount  decimal.Decimal // perUnitDiscount * quantity
	DiscountedMRP decimal.Decimal // LineMRP - LineDiscount
	BaseAmount    decimal.Decimal // DiscountedMRP / (1 + taxRate/100)
	TaxAmount     decimal.Decimal // DiscountedMRP - BaseAmount
	LineTotal     decimal.Decimal
}

// ComputeLine calcula el desglose de una línea (extracción de impuesto incluido).
// unitPrice y perUnitDiscount deben ser >= 0, quantity >= 1, taxRatePercent >= 0.
// No se valida perUnitDiscount <= unitPrice: un descuento mayor al precio es
// responsabilidad del llamador.
func ComputeLine(unitPrice, perUnitDiscount decimal.Decimal, quantity int64, taxRatePercent decimal.Decimal) (LineBreakdown, error) {
	if unitPrice.IsNegative() {
		return LineBreakdown{}, &domain.ValidationError{Message: "precio unitario negativo"}
	}
	if perUnitDiscount.IsNegative() {
		return LineBreakdown{}, &domain.ValidationError{Message: "descuento negativo"}
	}
	if quantity < 1 {
		return LineBreakdown{}, &domain.ValidationError{Message: "cantidad debe ser al menos 1"}
	}
	if taxRatePercent.IsNegative() {
		return LineBreakdown{}, &domain.ValidationError{Message: "tasa de impuesto negativa"}
	}

	qty := decimal.NewFromInt(quantity)
	lineMRP := unitPrice.Mul(qty)
	lineDiscount := perUnitDiscount.Mul(qty)
	discountedMRP := lineMRP.Sub(lineDiscount)

	// taxRate = 0 => baseAmount = discountedMRP, taxAmount = 0.
	baseAmount := discountedMRP
	if !taxRatePercent.IsZero() {
		taxMultiplier := decimal.NewFromInt(1).Add(taxRatePercent.Div(hundred))
		baseAmount = discountedMRP.Div(taxMultiplier)
	}
	taxAmount := discountedMRP.Sub(baseAmount)

	return LineBreakdown{
		LineMRP:       lineMRP,
		LineDiscount:  lineDiscount,
		DiscountedMRP: discountedMRP,
		BaseAmount:    baseAmount,
		TaxAmount:     taxAmount,
		LineTotal:     discountedMRP,
	}, nil
}

// Totals acumulador de totales a nivel de venta.
type Totals struct {
	Subtotal      decimal.Decimal // Σ LineMRP
	TotalDiscount decimal.Decimal // Σ LineDiscount
	TotalTax      decimal.Decimal // Σ TaxAmount
}

// Add acumula una línea en los totales.
func (t *Totals) Add(b LineBreakdown) {
	t.Subtotal = t.Subtotal.Add(b.LineMRP)
	t.TotalDiscount = t.TotalDiscount.Add(b.LineDiscount)
	t.TotalTax = t.TotalTax.Add(b.TaxAmount)
}

// TotalAmount total a pagar: Subtotal - TotalDiscount.
// El impuesto ya está incluido, nunca se vuelve a sumar.
func (t *Totals) TotalAmount() decimal.Decimal {
	return t.Subtotal.Sub(t.TotalDiscount)
}
