package retention

import "time"

// Age is the age of a timestamp expressed in each bucket unit at once.
// Every field is computed independently by floor division against the
// fixed unit lengths, so an item that is 8 days old reports Days=8,
// Weeks=1, Hours=192 and so on. Fields are never negative.
type Age struct {
	Years  int
	Months int
	Weeks  int
	Days   int
	Hours  int
}

// AgeBetween computes the age of timestamp t relative to the reference
// time. It returns a *TimeOrderError when t is after the reference,
// since a negative age has no meaning for retention.
//
// Sub-unit remainders are discarded: an item 59 minutes old has
// Hours=0, an item 61 minutes old has Hours=1.
func AgeBetween(t, reference time.Time) (Age, error) {
	if t.After(reference) {
		return Age{}, NewTimeOrderError(t, reference)
	}
	secs := int64(reference.Sub(t) / time.Second)
	return Age{
		Years:  int(secs / secondsPerYear),
		Months: int(secs / secondsPerMonth),
		Weeks:  int(secs / secondsPerWeek),
		Days:   int(secs / secondsPerDay),
		Hours:  int(secs / secondsPerHour),
	}, nil
}

// In returns the age in units of the given bucket category.
// Recent has no unit; it reports 0.
func (a Age) In(c Category) int {
	switch c {
	case Years:
		return a.Years
	case Months:
		return a.Months
	case Weeks:
		return a.Weeks
	case Days:
		return a.Days
	case Hours:
		return a.Hours
	}
	return 0
}
