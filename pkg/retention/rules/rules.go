package rules

import (
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/saturn/pkg/retention"
)

// Parse converts a rules string like "recent5,days10,weeks2" into a
// retention policy.
//
// Tokens are comma separated, each of the form <category><count> with
// a lowercase category name and a non-negative integer count.
// Whitespace around tokens is tolerated. Grammar violations return a
// *ParseError naming the offending token; a grammatically valid
// string that still describes an invalid policy (for example all
// counts zero) returns the *retention.PolicyError from policy
// construction.
func Parse(s string) (*retention.Policy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, &ParseError{Input: s, Reason: "rules string is empty"}
	}

	tokens := strings.Split(trimmed, ",")
	counts := make(map[retention.Category]int, len(tokens))
	for i, raw := range tokens {
		pos := i + 1
		token := strings.TrimSpace(raw)
		if token == "" {
			return nil, &ParseError{Input: s, Position: pos, Reason: "token is empty"}
		}

		name, digits := splitToken(token)
		if name == "" || digits == "" {
			return nil, &ParseError{
				Input:    s,
				Token:    token,
				Position: pos,
				Reason:   "invalid token, expected <category><count> like days10",
			}
		}

		cat, err := retention.ParseCategory(name)
		if err != nil {
			return nil, &ParseError{
				Input:      s,
				Token:      token,
				Position:   pos,
				Reason:     fmt.Sprintf("time category %q is invalid", name),
				Suggestion: suggestCategory(name),
			}
		}
		if _, dup := counts[cat]; dup {
			return nil, &ParseError{
				Input:    s,
				Token:    token,
				Position: pos,
				Reason:   fmt.Sprintf("time category %q appears more than once", name),
			}
		}

		count, err := strconv.Atoi(digits)
		if err != nil {
			return nil, &ParseError{
				Input:    s,
				Token:    token,
				Position: pos,
				Reason:   fmt.Sprintf("count %q is not a usable integer", digits),
			}
		}
		counts[cat] = count
	}

	return retention.NewPolicy(counts)
}

// Format renders a policy in rules string form: canonical category
// order, zero counts omitted. Parse(Format(p)) reproduces p for any
// valid policy.
func Format(policy *retention.Policy) string {
	var parts []string
	for _, c := range retention.Categories() {
		if n := policy.Count(c); n > 0 {
			parts = append(parts, fmt.Sprintf("%s%d", c, n))
		}
	}
	return strings.Join(parts, ",")
}

// splitToken separates the leading lowercase letters from the
// trailing digits. A token that is not exactly letters followed by
// digits yields two empty parts.
func splitToken(token string) (name, digits string) {
	i := 0
	for i < len(token) && token[i] >= 'a' && token[i] <= 'z' {
		i++
	}
	j := i
	for j < len(token) && token[j] >= '0' && token[j] <= '9' {
		j++
	}
	if i == 0 || j == i || j != len(token) {
		return "", ""
	}
	return token[:i], token[i:]
}
