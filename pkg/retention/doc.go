// Package retention decides which aged items to keep.
//
// Given a set of items that carry modification timestamps (backups,
// snapshots, log archives) and a policy like "keep 5 recent, 10 daily,
// 2 weekly", the package partitions the items into an accepted set and
// a rejected list. It only decides; it never deletes, moves, or
// otherwise touches the underlying artifacts.
//
// # Categories
//
// Retention thinks in six categories: years, months, weeks, days,
// hours, and recent. The first five are bucket categories with fixed
// unit lengths (a month is always 30 days, a year always 365 days;
// calendar boundaries play no part). Recent covers items less than one
// hour old.
//
// # Policies
//
// A policy assigns each category a keep count:
//
//	policy, err := retention.NewPolicy(map[retention.Category]int{
//	    retention.Recent: 5,
//	    retention.Days:   10,
//	    retention.Weeks:  2,
//	})
//
// Categories left out default to 0. A bucket category count of N means
// "keep the newest item of each of the N youngest buckets of that
// size": Days: 10 keeps at most one item from 1 day ago, one from
// 2 days ago, and so on up to 10 days.
//
// # Filtering
//
//	filter, err := retention.NewFilter(policy, time.Time{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	part, err := filter.Partition(items)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range part.Rejected {
//	    fmt.Println("would drop:", item)
//	}
//
// Items less than an hour old compete only for the recent slots. Every
// other item is probed against the bucket categories from youngest to
// oldest, and the first category whose count covers the item's age
// claims it; each claimed bucket keeps its newest member. Items
// claimed by no category are rejected.
//
// Classification is deterministic for a fixed reference time and does
// not depend on input order. Passing a zero reference time measures
// ages against the wall clock at each Partition call.
//
// # Errors
//
// Invalid policies fail construction with *PolicyError. Partition
// validates the whole input before classifying anything and aborts
// without a partial result: *InputError for a nil item sequence,
// *ItemError for a nil item or one without a usable timestamp, and
// *TimeOrderError for an item timestamp newer than the reference time.
//
// The textual policy form ("recent5,days10,weeks2") lives in the
// rules subpackage.
package retention
