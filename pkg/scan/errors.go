package scan

import "fmt"

// ScanError represents a failure to turn a path into an item.
type ScanError struct {
	Path      string // Path that failed
	Operation string // Operation that failed ("stat", "read", "time-from-name")
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error [path=%s, operation=%s]: %v", e.Path, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new ScanError.
func NewScanError(path, operation string, cause error) *ScanError {
	return &ScanError{
		Path:      path,
		Operation: operation,
		Cause:     cause,
	}
}
