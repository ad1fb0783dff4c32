package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// DocumentKind tipo de documento numerado.
type DocumentKind string

const (
	KindOrder   DocumentKind = "order"
	KindInvoice DocumentKind = "invoice"
)

var prefixes = map[DocumentKind]string{
	KindOrder:   "ORD",
	KindInvoice: "INV",
}

// Prefix prefijo del número (ORD, INV).
func (k DocumentKind) Prefix() string { return prefixes[k] }

// SequenceKey identifica un contador: por empresa, tipo de documento y año.
type SequenceKey struct {
	CompanyID string
	Kind      DocumentKind
	Year      int
}

// NumberPrefix parte fija del número para la clave, p. ej. "ORD-26-".
func (k SequenceKey) NumberPrefix() string {
	return fmt.Sprintf("%s-%02d-", k.Kind.Prefix(), k.Year%100)
}

// FormatNumber construye PREFIX-YY-NNNNNN con la secuencia rellenada a 6 dígitos.
func FormatNumber(key SequenceKey, seq int64) string {
	return fmt.Sprintf("%s%06d", key.NumberPrefix(), seq)
}

// ParseSequence extrae la secuencia de un número con el prefijo de la clave.
func ParseSequence(key SequenceKey, number string) (int64, bool) {
	rest, ok := strings.CutPrefix(number, key.NumberPrefix())
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
