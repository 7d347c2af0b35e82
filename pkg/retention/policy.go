package retention

import (
	"fmt"
	"strings"
)

// Policy is a validated retention policy: how many buckets to keep per
// bucket category, and how many recent items to keep. A Policy is
// immutable once built and safe for concurrent use.
type Policy struct {
	counts map[Category]int
}

// NewPolicy builds a Policy from per-category keep counts.
//
// Categories left out of the map default to 0 (keep nothing in that
// category). Validation fails with a *PolicyError when the map is
// empty, names an unknown category, carries a negative count, or sums
// to zero across all categories.
func NewPolicy(counts map[Category]int) (*Policy, error) {
	if len(counts) == 0 {
		return nil, NewPolicyError("", "no category counts given")
	}

	merged := make(map[Category]int, len(categoryOrder))
	for _, c := range categoryOrder {
		merged[c] = 0
	}

	total := 0
	for c, n := range counts {
		if !c.Valid() {
			return nil, NewPolicyError(string(c), "unknown time category")
		}
		if n < 0 {
			return nil, NewPolicyError(string(c), fmt.Sprintf("count must not be negative, got %d", n))
		}
		merged[c] = n
		total += n
	}
	if total == 0 {
		return nil, NewPolicyError("", "all category counts are zero, nothing would be kept")
	}

	return &Policy{counts: merged}, nil
}

// Count returns the keep count for a category. Unknown categories
// report 0.
func (p *Policy) Count(c Category) int {
	return p.counts[c]
}

// Counts returns a copy of all per-category keep counts.
func (p *Policy) Counts() map[Category]int {
	out := make(map[Category]int, len(p.counts))
	for c, n := range p.counts {
		out[c] = n
	}
	return out
}

// MaxKeep returns the largest number of items this policy can accept
// in one pass: one per requested bucket plus the recent count.
func (p *Policy) MaxKeep() int {
	total := 0
	for _, n := range p.counts {
		total += n
	}
	return total
}

// String renders all six counts in canonical order, for logs.
func (p *Policy) String() string {
	parts := make([]string, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		parts = append(parts, fmt.Sprintf("%s=%d", c, p.counts[c]))
	}
	return strings.Join(parts, " ")
}
