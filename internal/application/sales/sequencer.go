package sales

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sufijo de marca fijo en todo número de factura.
const brandTag = "RPS"

// stripDiacritics elimina tildes y diacríticos del nombre de tienda
// ("Ñuñoa" -> "Nunoa") antes de derivar el prefijo.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// InvoicePrefix deriva el prefijo de factura de una tienda: primeras 4 letras
// del nombre normalizado, en mayúsculas, más el tag de marca.
// Si el nombre no aporta letras, se usa "STOR".
func InvoicePrefix(storeName string) string {
	normalized, _, err := transform.String(stripDiacritics, storeName)
	if err != nil {
		normalized = storeName
	}
	var b strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() == 4 {
				break
			}
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "STOR"
	}
	return prefix + brandTag
}

// FormatInvoiceNumber arma el número completo: prefijo + consecutivo en 4 dígitos
// con ceros a la izquierda. El consecutivo viene del contador atómico por tienda,
// asignado dentro de la misma transacción de la venta.
func FormatInvoiceNumber(storeName string, seq int64) string {
	return fmt.Sprintf("%s%04d", InvoicePrefix(storeName), seq)
}
