package rules

import (
	"fmt"
	"strings"
)

// ParseError reports an unusable rules string. Position is the
// 1-based token position within the string; 0 means the string as a
// whole is at fault.
type ParseError struct {
	Input      string // Full rules string as given
	Token      string // Offending token, empty for whole-string errors
	Position   int    // 1-based token position, 0 for whole-string errors
	Reason     string // Human-readable description of the violation
	Suggestion string // Suggested fix (optional)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	switch {
	case e.Token != "":
		fmt.Fprintf(&sb, "rules error [token=%s, position=%d]: %s", e.Token, e.Position, e.Reason)
	case e.Position > 0:
		fmt.Fprintf(&sb, "rules error [position=%d]: %s", e.Position, e.Reason)
	default:
		fmt.Fprintf(&sb, "rules error: %s", e.Reason)
	}

	if e.Suggestion != "" {
		sb.WriteString(". ")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}
