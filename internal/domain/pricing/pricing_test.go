package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/pricing"
)

// Tolerancia para comparaciones con división decimal (16 dígitos por defecto).
var tolerance = decimal.New(1, -8) // 1e-8

func assertDecimalNear(t *testing.T, expected, actual decimal.Decimal, msg string) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	assert.True(t, diff.LessThan(tolerance), "%s: esperado %s, obtenido %s", msg, expected, actual)
}

// Producto a 118.00 con IVA 18% incluido: base 100.00, impuesto 18.00, total 118.00.
func TestComputeLine_ImpuestoIncluido(t *testing.T) {
	b, err := pricing.ComputeLine(
		decimal.RequireFromString("118.00"), decimal.Zero, 1,
		decimal.NewFromInt(18),
	)
	require.NoError(t, err)

	assertDecimalNear(t, decimal.NewFromInt(100), b.BaseAmount, "base")
	assertDecimalNear(t, decimal.NewFromInt(18), b.TaxAmount, "impuesto")
	assert.True(t, b.LineTotal.Equal(decimal.RequireFromString("118.00")), "total de línea")
}

func TestComputeLine_TasaCero(t *testing.T) {
	b, err := pricing.ComputeLine(decimal.NewFromInt(50), decimal.Zero, 2, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, b.TaxAmount.IsZero())
	assert.True(t, b.BaseAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, b.LineTotal.Equal(decimal.NewFromInt(100)))
}

func TestComputeLine_ConDescuento(t *testing.T) {
	// 3 unidades a 118.00 con 18.00 de descuento por unidad.
	b, err := pricing.ComputeLine(
		decimal.RequireFromString("118.00"), decimal.RequireFromString("18.00"), 3,
		decimal.NewFromInt(18),
	)
	require.NoError(t, err)

	assert.True(t, b.LineMRP.Equal(decimal.RequireFromString("354.00")))
	assert.True(t, b.LineDiscount.Equal(decimal.RequireFromString("54.00")))
	assert.True(t, b.DiscountedMRP.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, b.LineTotal.Equal(b.DiscountedMRP), "el total de línea es el MRP descontado")

	// Propiedad: baseAmount * (1 + r/100) == discountedMRP.
	mult := decimal.NewFromInt(1).Add(decimal.NewFromInt(18).Div(decimal.NewFromInt(100)))
	assertDecimalNear(t, b.DiscountedMRP, b.BaseAmount.Mul(mult), "reconstrucción del MRP")
}

func TestComputeLine_Validaciones(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		discount string
		qty      int64
		rate     string
	}{
		{"precio negativo", "-1", "0", 1, "18"},
		{"descuento negativo", "10", "-1", 1, "18"},
		{"cantidad cero", "10", "0", 0, "18"},
		{"tasa negativa", "10", "0", 1, "-5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pricing.ComputeLine(
				decimal.RequireFromString(tc.price),
				decimal.RequireFromString(tc.discount),
				tc.qty,
				decimal.RequireFromString(tc.rate),
			)
			require.Error(t, err)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestTotals_Agregacion(t *testing.T) {
	var totals pricing.Totals

	b1, err := pricing.ComputeLine(decimal.RequireFromString("118.00"), decimal.Zero, 2, decimal.NewFromInt(18))
	require.NoError(t, err)
	b2, err := pricing.ComputeLine(decimal.RequireFromString("52.50"), decimal.RequireFromString("2.50"), 4, decimal.NewFromInt(5))
	require.NoError(t, err)

	totals.Add(b1)
	totals.Add(b2)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("446.00")))
	assert.True(t, totals.TotalDiscount.Equal(decimal.RequireFromString("10.00")))
	// subtotal - totalDiscount == totalAmount, y nunca se suma impuesto de nuevo.
	assert.True(t, totals.TotalAmount().Equal(decimal.RequireFromString("436.00")))
	assert.True(t, totals.TotalAmount().Equal(b1.LineTotal.Add(b2.LineTotal)),
		"el total de la venta es la suma de los totales de línea")
}
