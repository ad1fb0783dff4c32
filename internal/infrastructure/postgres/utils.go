package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// noRow indica que la búsqueda por id no identifica ningún registro: sin filas, o un id que no es
// un UUID válido (22P02).
func noRow(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// uniqueViolation devuelve el nombre del constraint si err es una violación de unicidad (23505).
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// nullableID convierte "" en NULL para filtros opcionales por empresa.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// nullableText convierte "" en NULL para filtros opcionales de texto.
func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
