package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrSyncInProgress = errors.New("sincronización en curso")
)

// NotFoundError indica qué recurso faltó (store, product, sale, customer).
// Unwrap retorna ErrNotFound para que errors.Is siga funcionando.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError entrada malformada (lista de ítems vacía, cantidad no positiva, etc.).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError stock insuficiente para completar una venta.
// Lleva producto y cantidades para el mensaje al usuario.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: solicitado %d, disponible %d",
		e.ProductName, e.Requested, e.Available)
}

// ExternalFetchError falla de un lote contra la plataforma externa.
// No es fatal para la corrida de sincronización: se acumula en el resumen.
type ExternalFetchError struct {
	Batch int
	Err   error
}

func (e *ExternalFetchError) Error() string {
	return fmt.Sprintf("lote %d: %v", e.Batch, e.Err)
}

func (e *ExternalFetchError) Unwrap() error { return e.Err }
