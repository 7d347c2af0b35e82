package retention

import "time"

// Category identifies one class of time buckets an item can be retained in.
// The set of categories is closed; see Categories for the canonical order.
type Category string

// The six retention categories.
const (
	Years  Category = "years"
	Months Category = "months"
	Weeks  Category = "weeks"
	Days   Category = "days"
	Hours  Category = "hours"
	Recent Category = "recent"
)

// Fixed unit lengths in seconds. Ages are computed by floor division
// against these, never against calendar boundaries: a month is always
// 30 days and a year is always 365 days.
const (
	secondsPerHour  = 3600
	secondsPerDay   = 86400
	secondsPerWeek  = 604800
	secondsPerMonth = 2592000
	secondsPerYear  = 31536000
)

// categoryOrder is the canonical category order, oldest granularity first.
// All iteration over categories goes through this slice so that results
// never depend on map iteration order.
var categoryOrder = [...]Category{Years, Months, Weeks, Days, Hours, Recent}

// scanOrder is the order in which bucket categories are probed when
// classifying an item: youngest granularity first. Recent is not a
// bucket category and is handled separately.
var scanOrder = [...]Category{Hours, Days, Weeks, Months, Years}

// Categories returns all valid categories in canonical order,
// oldest granularity first.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder[:])
	return out
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range categoryOrder {
		if s == string(c) {
			return c, nil
		}
	}
	return "", NewPolicyError(s, "unknown time category")
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Unit returns the fixed unit length of a bucket category.
// Recent has no unit length and reports zero.
func (c Category) Unit() time.Duration {
	switch c {
	case Years:
		return secondsPerYear * time.Second
	case Months:
		return secondsPerMonth * time.Second
	case Weeks:
		return secondsPerWeek * time.Second
	case Days:
		return secondsPerDay * time.Second
	case Hours:
		return secondsPerHour * time.Second
	}
	return 0
}
