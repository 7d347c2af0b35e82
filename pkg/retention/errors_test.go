package retention

import (
	"strings"
	"testing"
	"time"
)

// TestPolicyError_Message tests both renderings of a policy error.
func TestPolicyError_Message(t *testing.T) {
	withCat := NewPolicyError("days", "count must not be negative, got -1")
	if got := withCat.Error(); !strings.Contains(got, "category=days") {
		t.Errorf("Expected message to name the category, got %q", got)
	}

	whole := NewPolicyError("", "no category counts given")
	if got := whole.Error(); strings.Contains(got, "category=") {
		t.Errorf("Expected no category marker for a whole-policy error, got %q", got)
	}
}

// TestTimeOrderError_Message tests that both timestamps appear in the
// message.
func TestTimeOrderError_Message(t *testing.T) {
	ts := time.Date(2016, 1, 2, 0, 0, 0, 0, time.UTC)
	ref := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	err := NewTimeOrderError(ts, ref)
	msg := err.Error()
	if !strings.Contains(msg, "2016-01-02") || !strings.Contains(msg, "2016-01-01") {
		t.Errorf("Expected both timestamps in message, got %q", msg)
	}
}

// TestItemError_Message tests that the input position appears in the
// message.
func TestItemError_Message(t *testing.T) {
	err := NewItemError(3, "item is nil")
	if got := err.Error(); !strings.Contains(got, "index=3") {
		t.Errorf("Expected index in message, got %q", got)
	}
}

// TestInputError_Message tests the input error rendering.
func TestInputError_Message(t *testing.T) {
	err := NewInputError("item sequence is nil")
	if got := err.Error(); !strings.Contains(got, "item sequence is nil") {
		t.Errorf("Expected reason in message, got %q", got)
	}
}
