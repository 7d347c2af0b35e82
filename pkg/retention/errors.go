package retention

import (
	"fmt"
	"time"
)

// PolicyError reports an invalid retention policy.
type PolicyError struct {
	Category string // Offending category name, empty when the policy as a whole is at fault
	Reason   string // Human-readable description of the violation
}

// Error implements the error interface.
func (e *PolicyError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("policy error [category=%s]: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("policy error: %s", e.Reason)
}

// NewPolicyError creates a new PolicyError.
func NewPolicyError(category, reason string) *PolicyError {
	return &PolicyError{
		Category: category,
		Reason:   reason,
	}
}

// TimeOrderError reports an item timestamp that is newer than the
// reference time, making its age undefined.
type TimeOrderError struct {
	Time      time.Time // Item timestamp
	Reference time.Time // Reference time ages are measured against
}

// Error implements the error interface.
func (e *TimeOrderError) Error() string {
	return fmt.Sprintf("time order error [time=%s, reference=%s]: timestamp is newer than the reference time",
		e.Time.Format(time.RFC3339), e.Reference.Format(time.RFC3339))
}

// NewTimeOrderError creates a new TimeOrderError.
func NewTimeOrderError(t, reference time.Time) *TimeOrderError {
	return &TimeOrderError{
		Time:      t,
		Reference: reference,
	}
}

// ItemError reports an item that cannot be classified.
type ItemError struct {
	Index  int    // Position of the item in the input
	Reason string // Human-readable description of the problem
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item error [index=%d]: %s", e.Index, e.Reason)
}

// NewItemError creates a new ItemError.
func NewItemError(index int, reason string) *ItemError {
	return &ItemError{
		Index:  index,
		Reason: reason,
	}
}

// InputError reports input that is not a usable item sequence.
type InputError struct {
	Reason string // Human-readable description of the problem
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Reason)
}

// NewInputError creates a new InputError.
func NewInputError(reason string) *InputError {
	return &InputError{
		Reason: reason,
	}
}
