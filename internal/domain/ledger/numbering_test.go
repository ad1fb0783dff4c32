package ledger_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
)

func TestFormatNumber(t *testing.T) {
	orders := ledger.SequenceKey{CompanyID: "c", Kind: ledger.KindOrder, Year: 2026}
	invoices := ledger.SequenceKey{CompanyID: "c", Kind: ledger.KindInvoice, Year: 2026}

	assert.Equal(t, "ORD-26-000001", ledger.FormatNumber(orders, 1))
	assert.Equal(t, "INV-26-000042", ledger.FormatNumber(invoices, 42))
	assert.Equal(t, "ORD-05-000007", ledger.FormatNumber(ledger.SequenceKey{Kind: ledger.KindOrder, Year: 2005}, 7))

	pattern := regexp.MustCompile(`^ORD-\d{2}-\d{6}$`)
	assert.Regexp(t, pattern, ledger.FormatNumber(orders, 999999))
}

func TestParseSequence(t *testing.T) {
	key := ledger.SequenceKey{Kind: ledger.KindOrder, Year: 2026}

	n, ok := ledger.ParseSequence(key, "ORD-26-000123")
	assert.True(t, ok)
	assert.Equal(t, int64(123), n)

	_, ok = ledger.ParseSequence(key, "ORD-25-000123")
	assert.False(t, ok, "otro año")
	_, ok = ledger.ParseSequence(key, "INV-26-000123")
	assert.False(t, ok, "otro tipo")
	_, ok = ledger.ParseSequence(key, "ORD-26-manual")
	assert.False(t, ok)
}
