package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

func TestTaxonomia_ErrorsIs(t *testing.T) {
	assert.ErrorIs(t, domain.Invalid("falta %s", "nome"), domain.ErrInvalidInput)
	assert.ErrorIs(t, domain.NotFound("patrimônio", int64(3)), domain.ErrNotFound)
	assert.ErrorIs(t, &domain.ConflictError{Constraint: "patrimonio_patrimonio_key"}, domain.ErrConflict)

	cause := errors.New("connection reset")
	err := domain.Storage("insert asset", cause)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause, "StorageError debe exponer la causa")
}

func TestStorage_NoReenvuelveErroresDeDominio(t *testing.T) {
	inner := domain.NotFound("setor", 9)
	err := domain.Storage("op", fmt.Errorf("ctx: %w", inner))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStorage)
	assert.NoError(t, domain.Storage("op", nil))
}

func TestConflictError_Mensaje(t *testing.T) {
	err := &domain.ConflictError{Constraint: "patrimonio_patrimonio_key"}
	assert.Equal(t, "Conflito de dados: o valor 'patrimonio_patrimonio_key' já existe.", err.Error())
}
