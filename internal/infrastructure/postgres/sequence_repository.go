package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores de numeración en la tabla document_sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Debe recibir la tx que inserta el documento.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next upsert del contador: la fila queda bloqueada hasta el fin de la transacción, así que dos
// órdenes de la misma empresa y año no pueden obtener el mismo número.
func (r *SequenceRepo) Next(ctx context.Context, key ledger.SequenceKey, floor int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (company_id, kind, year, last_number)
		VALUES ($1, $2, $3, $4::bigint + 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET last_number = GREATEST(document_sequences.last_number, $4::bigint) + 1, updated_at = now()
		RETURNING last_number`,
		key.CompanyID, string(key.Kind), key.Year, floor).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key.Kind, err)
	}
	return n, nil
}

var documentTables = map[ledger.DocumentKind]string{
	ledger.KindOrder:   "orders",
	ledger.KindInvoice: "invoices",
}

// HighestIssued mayor sufijo numérico guardado con el prefijo de la clave.
func (r *SequenceRepo) HighestIssued(ctx context.Context, key ledger.SequenceKey) (int64, error) {
	table, ok := documentTables[key.Kind]
	if !ok {
		return 0, fmt.Errorf("tipo de documento desconocido: %q", key.Kind)
	}
	prefix := key.NumberPrefix()
	var n int64
	err := r.q.QueryRow(ctx, fmt.Sprintf(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM $3::int) AS BIGINT)), 0)
		FROM %s
		WHERE company_id = $1 AND number LIKE $2 AND SUBSTRING(number FROM $3::int) ~ '^[0-9]{1,18}$'`, table),
		key.CompanyID, prefix+"%", len(prefix)+1).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("highest %s number: %w", key.Kind, err)
	}
	return n, nil
}
