package models

import "fmt"

// CompileErrorKind is the closed set of query-compilation failures. They are
// raised before any SQL executes, so a caller never sees a half-built
// statement.
type CompileErrorKind string

const (
	CompileUnknownTable          CompileErrorKind = "UnknownTable"
	CompileUnknownAlias          CompileErrorKind = "UnknownAlias"
	CompileColumnNotAllowed      CompileErrorKind = "ColumnNotAllowed"
	CompileOperatorArityMismatch CompileErrorKind = "OperatorArityMismatch"
	CompileInvalidPayload        CompileErrorKind = "InvalidPayload"
)

// CompileError reports an identifier or operator the schema registry refused.
type CompileError struct {
	Kind    CompileErrorKind
	Ident   string
	Message string
}

func (e *CompileError) Error() string {
	if e.Ident != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Ident)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// StoreErrorKind classifies a storage-layer failure.
type StoreErrorKind string

const (
	ErrNotFound               StoreErrorKind = "NotFound"
	ErrForeignKeyViolation    StoreErrorKind = "ForeignKeyViolation"
	ErrCheckViolation         StoreErrorKind = "CheckConstraintViolation"
	ErrConcurrentModification StoreErrorKind = "ConcurrentModification"
	ErrUnknown                StoreErrorKind = "Unknown"
)

// StoreError is the typed result every public storage operation returns on
// failure; raw database errors never cross the storage boundary.
type StoreError struct {
	Kind       StoreErrorKind
	Message    string
	Constraint string // offending constraint name, when extractable
	cause      error
}

func NewStoreError(kind StoreErrorKind, message, constraint string, cause error) *StoreError {
	return &StoreError{Kind: kind, Message: message, Constraint: constraint, cause: cause}
}

func (e *StoreError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("%s: %s (constraint %s)", e.Kind, e.Message, e.Constraint)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.cause
}
