package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-api/internal/domain"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{domain.NotFound(domain.EntityOrder, "o-1"), domain.ErrNotFound},
		{domain.Invalid("quantity", "debe ser mayor que cero"), domain.ErrInvalidInput},
		{&domain.IncompatibleTypesError{ProductName: "Aceite"}, domain.ErrIncompatibleTypes},
		{&domain.InsufficientStockError{Current: 70, Requested: 1000}, domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("capa: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.sentinel, tc.err.Error())
	}
}

func TestInsufficientStockError_CarriesFigures(t *testing.T) {
	err := fmt.Errorf("guard: %w", &domain.InsufficientStockError{ProductID: "p", Current: 70, Requested: 1000})

	var stockErr *domain.InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(70), stockErr.Current)
	assert.Equal(t, int64(1000), stockErr.Requested)
	assert.Contains(t, err.Error(), "Stock actual: 70")
}
