package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("falla de almacenamiento")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// ValidationError entrada rechazada antes de tocar la base; Msg es apto para el usuario.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError con formato.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError la entidad referenciada no existe.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return e.Resource + " não encontrado"
	}
	return fmt.Sprintf("%s %v não encontrado", e.Resource, e.ID)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError violación de unicidad; Constraint es el nombre de la restricción.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflito de dados: o valor '%s' já existe.", e.Constraint)
}
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError falla de infraestructura (DB o disco).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string        { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage envuelve err como StorageError salvo que ya sea un error de dominio.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsDomain indica si err ya pertenece a la taxonomía de dominio.
func IsDomain(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage) ||
		errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
