package report

import (
	"sort"

	"github.com/sadopc/ekwiwalent/internal/brigade"
)

// QuarterlyReport is the full report for one quarter of one year.
type QuarterlyReport struct {
	Range QuarterRange
	Totals
	Members    []MemberRow // only members active in the period
	Types      []TypeRow
	Operations []brigade.Operation // oldest first
}

// Quarterly builds the report for the given quarter. With no quarter selected
// there is nothing to report and ok is false.
func Quarterly(ops []brigade.Operation, members []brigade.Member, q Quarter, year int) (*QuarterlyReport, bool) {
	if !q.Valid() {
		return nil, false
	}
	r := QuarterRangeFor(q, year)
	inRange := FilterRange(ops, r)
	return &QuarterlyReport{
		Range:      r,
		Totals:     TotalsOf(inRange),
		Members:    ByMember(inRange, members, true),
		Types:      ByType(inRange),
		Operations: Chronological(inRange),
	}, true
}

// Chronological returns a copy of ops sorted by date, oldest first. A fixed
// period reads in calendar order.
func Chronological(ops []brigade.Operation) []brigade.Operation {
	out := append([]brigade.Operation(nil), ops...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Recent returns a copy of ops sorted by date, newest first, the order of the
// running log.
func Recent(ops []brigade.Operation) []brigade.Operation {
	out := append([]brigade.Operation(nil), ops...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
