package catalog

import "fmt"

// CatalogError represents an error from the item catalog.
type CatalogError struct {
	Operation string
	Cause     error
}

// Error returns the error message.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(operation string, cause error) *CatalogError {
	return &CatalogError{
		Operation: operation,
		Cause:     cause,
	}
}
