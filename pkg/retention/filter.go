package retention

import (
	"log/slog"
	"sort"
	"time"
)

// Item is anything that carries a modification timestamp. Items are
// never mutated by filtering; any payload beyond the timestamp is
// opaque. Accepted and rejected membership is decided by item
// identity, so implementations must be usable as map keys (pointer
// types are the expected case).
type Item interface {
	ModTime() time.Time
}

// Partition is the outcome of one filtering pass over a set of items.
type Partition struct {
	// Accepted holds the retained items, sorted oldest first. Ordering
	// is for presentation only; membership is the contract.
	Accepted []Item

	// Rejected holds the dropped items in their original input order.
	// Every input item lands in exactly one of the two lists.
	Rejected []Item

	// Reference is the time ages were measured against.
	Reference time.Time

	// CategoryCounts reports how many accepted items were claimed by
	// each category, including Recent.
	CategoryCounts map[Category]int
}

// Filter classifies items into time buckets according to a policy and
// keeps the newest item of each requested bucket. A Filter is
// immutable and safe for concurrent use.
type Filter struct {
	policy    *Policy
	reference time.Time
	logger    *slog.Logger
}

// NewFilter creates a filter for the given policy.
//
// A zero reference time means every Partition call measures ages
// against the wall clock at call time. A fixed reference time makes
// filtering fully deterministic, which is what the CLI and the tests
// use.
func NewFilter(policy *Policy, reference time.Time) (*Filter, error) {
	if policy == nil {
		return nil, NewPolicyError("", "policy must not be nil")
	}
	return &Filter{
		policy:    policy,
		reference: reference,
		logger:    slog.Default().With("component", "retention.filter"),
	}, nil
}

// bucketKey identifies one time bucket: the claiming category and the
// item age in that category's units.
type bucketKey struct {
	cat Category
	n   int
}

// Partition splits items into accepted and rejected sets.
//
// Classification of one item works on its Age relative to the
// reference time:
//
//  1. Age in hours is 0: the item is a recent candidate. It can only
//     be kept through the recent count, never through a bucket.
//  2. Otherwise bucket categories are probed youngest first (hours,
//     days, weeks, months, years). The first category whose configured
//     count covers the item's age in that category's units claims the
//     item into the bucket (category, age). Probing stops at the first
//     claim, so an item is never counted against a coarser category
//     once a finer one has claimed it.
//  3. An item no category claims is rejected.
//
// Each claimed bucket then keeps exactly its newest item; the newest
// items up to the recent count survive from the recent candidates
// (newest input position wins timestamp ties). Everything else is
// rejected.
//
// The whole input is validated before any classification: a nil item
// or an item without a usable timestamp aborts with *ItemError, an
// item newer than the reference time aborts with *TimeOrderError, and
// a nil input slice aborts with *InputError. There are no partial
// results. An empty non-nil input is valid and yields an empty
// partition.
func (f *Filter) Partition(items []Item) (*Partition, error) {
	if items == nil {
		return nil, NewInputError("item sequence is nil")
	}

	reference := f.reference
	if reference.IsZero() {
		reference = time.Now()
	}

	// Validation pass. Timestamps are read exactly once per item.
	times := make([]time.Time, len(items))
	ages := make([]Age, len(items))
	for i, item := range items {
		if item == nil {
			return nil, NewItemError(i, "item is nil")
		}
		t := item.ModTime()
		if t.IsZero() {
			return nil, NewItemError(i, "item lacks a usable timestamp")
		}
		age, err := AgeBetween(t, reference)
		if err != nil {
			return nil, err
		}
		times[i] = t
		ages[i] = age
	}

	// Classification pass: claim each item into a bucket, the recent
	// candidate list, or nothing.
	buckets := make(map[bucketKey][]int)
	var recentIdx []int
	for i := range items {
		if ages[i].Hours == 0 {
			recentIdx = append(recentIdx, i)
			continue
		}
		for _, c := range scanOrder {
			n := ages[i].In(c)
			if n > 0 && n <= f.policy.Count(c) {
				key := bucketKey{cat: c, n: n}
				buckets[key] = append(buckets[key], i)
				break
			}
		}
	}

	// Survivor selection: the newest item per bucket. Bucket member
	// lists are in input order, so preferring later items on equal
	// timestamps keeps the newest input position.
	counts := make(map[Category]int, len(categoryOrder))
	var survivors []int
	for key, members := range buckets {
		best := members[0]
		for _, i := range members[1:] {
			if !times[i].Before(times[best]) {
				best = i
			}
		}
		survivors = append(survivors, best)
		counts[key.cat]++
	}

	// Recent candidates: keep the newest ones up to the recent count.
	// The count check is explicit so a recent count of 0 keeps none.
	if n := f.policy.Count(Recent); n > 0 && len(recentIdx) > 0 {
		sort.SliceStable(recentIdx, func(a, b int) bool {
			return times[recentIdx[a]].Before(times[recentIdx[b]])
		})
		if len(recentIdx) > n {
			recentIdx = recentIdx[len(recentIdx)-n:]
		}
		survivors = append(survivors, recentIdx...)
		counts[Recent] = len(recentIdx)
	}

	// Deterministic output order: oldest first, input order on ties.
	sort.Slice(survivors, func(a, b int) bool {
		ia, ib := survivors[a], survivors[b]
		if times[ia].Equal(times[ib]) {
			return ia < ib
		}
		return times[ia].Before(times[ib])
	})

	acceptedSet := make(map[Item]struct{}, len(survivors))
	accepted := make([]Item, 0, len(survivors))
	for _, i := range survivors {
		if _, ok := acceptedSet[items[i]]; ok {
			continue
		}
		acceptedSet[items[i]] = struct{}{}
		accepted = append(accepted, items[i])
	}

	rejected := make([]Item, 0, len(items)-len(accepted))
	for _, item := range items {
		if _, ok := acceptedSet[item]; !ok {
			rejected = append(rejected, item)
		}
	}

	f.logger.Debug("partition complete",
		"items", len(items),
		"accepted", len(accepted),
		"rejected", len(rejected),
		"reference_time", reference,
	)

	return &Partition{
		Accepted:       accepted,
		Rejected:       rejected,
		Reference:      reference,
		CategoryCounts: counts,
	}, nil
}

// Policy returns the policy this filter applies.
func (f *Filter) Policy() *Policy {
	return f.policy
}

// Reference returns the configured reference time. A zero value means
// the wall clock is read at each Partition call.
func (f *Filter) Reference() time.Time {
	return f.reference
}
