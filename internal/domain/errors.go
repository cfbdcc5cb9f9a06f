package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con una transacción concurrente")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrReadAfterWrite: la transacción intentó leer después de haber escrito.
	ErrReadAfterWrite = errors.New("lectura después de escritura dentro de la transacción")
)

// ValidationError entrada malformada detectada antes de abrir la transacción.
type ValidationError struct {
	Fields []string
}

// NewValidationError construye el error con los campos que fallaron.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError referencia inexistente (repuesto, cliente o factura) en el momento de la transacción.
type NotFoundError struct {
	Entity string // part | customer | invoice
	ID     string
}

// NewNotFoundError construye el error.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError el consumo solicitado supera el stock disponible del repuesto.
type InsufficientStockError struct {
	PartID    string
	PartName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d", e.PartName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
