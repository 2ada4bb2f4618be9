package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/ekwiwalent/internal/brigade"
)

// Quarter is a three-month reporting period. QuarterNone means no period has
// been chosen yet.
type Quarter int

const (
	QuarterNone Quarter = iota
	Q1
	Q2
	Q3
	Q4
)

// Quarters lists the selectable quarters in calendar order.
var Quarters = []Quarter{Q1, Q2, Q3, Q4}

var quarterLabels = map[Quarter]string{
	Q1: "Q1 (Styczeń - Marzec)",
	Q2: "Q2 (Kwiecień - Czerwiec)",
	Q3: "Q3 (Lipiec - Wrzesień)",
	Q4: "Q4 (Październik - Grudzień)",
}

func (q Quarter) Valid() bool { return q >= Q1 && q <= Q4 }

func (q Quarter) String() string {
	if !q.Valid() {
		return ""
	}
	return fmt.Sprintf("Q%d", int(q))
}

// Label is the display name including the month span.
func (q Quarter) Label() string {
	return quarterLabels[q]
}

// Months returns the first and last month of the quarter.
func (q Quarter) Months() (time.Month, time.Month) {
	first := time.Month(3*(int(q)-1) + 1)
	return first, first + 2
}

// ParseQuarter accepts "Q1".."Q4" in any case, or the bare number.
func ParseQuarter(s string) (Quarter, error) {
	switch strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "Q") {
	case "1":
		return Q1, nil
	case "2":
		return Q2, nil
	case "3":
		return Q3, nil
	case "4":
		return Q4, nil
	}
	return QuarterNone, fmt.Errorf("invalid quarter %q: want Q1..Q4", s)
}

// QuarterRange is the inclusive date span of a quarter.
type QuarterRange struct {
	Quarter Quarter
	Year    int
	Start   time.Time // first day, 00:00:00
	End     time.Time // last day, 23:59:59
}

// QuarterRangeFor resolves a quarter of a year to its date span. The end is
// built as day 0 of the following month, so month lengths and leap years
// come out right.
func QuarterRangeFor(q Quarter, year int) QuarterRange {
	if !q.Valid() {
		return QuarterRange{Year: year}
	}
	first, last := q.Months()
	return QuarterRange{
		Quarter: q,
		Year:    year,
		Start:   time.Date(year, first, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(year, last+1, 0, 23, 59, 59, 0, time.UTC),
	}
}

// Contains reports whether the calendar date of t lies within the range,
// both ends included.
func (r QuarterRange) Contains(t time.Time) bool {
	if !r.Quarter.Valid() {
		return false
	}
	d := brigade.Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// FilterRange returns the operations dated within r, in input order.
func FilterRange(ops []brigade.Operation, r QuarterRange) []brigade.Operation {
	var out []brigade.Operation
	for _, op := range ops {
		if r.Contains(op.Date) {
			out = append(out, op)
		}
	}
	return out
}

// AvailableYears lists the distinct years having operations, plus currentYear,
// newest first.
func AvailableYears(ops []brigade.Operation, currentYear int) []int {
	seen := map[int]bool{currentYear: true}
	years := []int{currentYear}
	for _, op := range ops {
		y := op.Date.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// ListAvailableYears is AvailableYears for the current calendar year.
func ListAvailableYears(ops []brigade.Operation) []int {
	return AvailableYears(ops, time.Now().Year())
}
