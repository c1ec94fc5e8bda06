/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a row or registered component does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails, e.g. a nil byte key
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataIntegrity is returned when a stored reference points at a row that does not exist
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrUnsupported is returned by operations that are deliberately not implemented
	ErrUnsupported = errors.New("operation not supported")
)

// NotFoundError represents an error when a row or component is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DataIntegrityError reports a foreign key held by Owner that resolves to no row.
type DataIntegrityError struct {
	Owner        string
	ColumnFamily string
	TargetID     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("entity %s is corrupt: it references %s row %q which does not exist",
		e.Owner, e.ColumnFamily, e.TargetID)
}

func (e *DataIntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// UnsupportedError names an operation that fails fast instead of returning a partial result
type UnsupportedError struct {
	Operation string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Operation)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewDataIntegrityError creates a new DataIntegrityError
func NewDataIntegrityError(owner, columnFamily, targetID string) error {
	return &DataIntegrityError{Owner: owner, ColumnFamily: columnFamily, TargetID: targetID}
}

// NewUnsupportedError creates a new UnsupportedError
func NewUnsupportedError(operation string) error {
	return &UnsupportedError{Operation: operation}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDataIntegrity checks if an error is a dangling reference error
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}

// IsUnsupported checks if an error is an unsupported operation error
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
