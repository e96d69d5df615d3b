// Package apierror provides standardized error response structures for the API
// and the typed errors that services raise. All errors returned to clients go
// through this package to ensure consistency and to prevent leaking internal
// details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ── Typed service errors ─────────────────────────────────────────────────────
// Handlers translate these into HTTP status codes with errors.As; services
// never write HTTP responses themselves.

// ValidationError indica entrada malformada o fuera de rango, con detalle por campo.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

func NewValidationMsg(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

// NotFoundError indica que un id referenciado no existe.
type NotFoundError struct {
	Recurso string
	ID      uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Recurso, e.ID)
}

func NewNotFound(recurso string, id uint) *NotFoundError {
	return &NotFoundError{Recurso: recurso, ID: id}
}

// TxAbortError envuelve cualquier fallo a mitad de una mutación multi-paso.
// La transacción completa ya hizo rollback cuando este error llega al caller.
type TxAbortError struct {
	Op  string
	Err error
}

func (e *TxAbortError) Error() string {
	return fmt.Sprintf("error en %s: %v", e.Op, e.Err)
}

func (e *TxAbortError) Unwrap() error { return e.Err }

func NewTxAbort(op string, err error) *TxAbortError {
	return &TxAbortError{Op: op, Err: err}
}
