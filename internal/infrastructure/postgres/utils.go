package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Patrimonio-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translate convierte errores de PostgreSQL a la taxonomía de dominio.
// 23505 → ConflictError con el nombre de la restricción; 23503 → ValidationError; el resto se envuelve con op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &domain.ConflictError{Constraint: pgErr.ConstraintName}
		case codeForeignKeyViolation:
			return domain.Invalid("Referência inválida (%s).", pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullIfEmpty los textos opcionales vacíos se guardan como NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
