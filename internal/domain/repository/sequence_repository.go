package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
)

// SequenceRepository contadores de numeración por (empresa, tipo, año).
type SequenceRepository interface {
	// Next incrementa atómicamente el contador y devuelve el nuevo valor. Si floor es mayor que
	// el valor guardado, el contador parte de floor. Debe ejecutarse dentro de la transacción que
	// inserta el documento: el contador queda bloqueado hasta el commit.
	Next(ctx context.Context, key ledger.SequenceKey, floor int64) (int64, error)
	// HighestIssued mayor secuencia presente en los documentos ya guardados para la clave.
	HighestIssued(ctx context.Context, key ledger.SequenceKey) (int64, error)
}
