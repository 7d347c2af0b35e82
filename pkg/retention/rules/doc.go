// Package rules implements the textual form of retention policies.
//
// A rules string is a comma separated list of <category><count>
// tokens:
//
//	recent5,days10,weeks2
//
// meaning keep the 5 newest items, one item per day for 10 days, and
// one item per week for 2 weeks. Parse turns such a string into a
// retention.Policy; Format renders a policy back into its canonical
// string form. Unknown category names fail with a suggestion for the
// closest valid one.
package rules
