// Package report derives compensation views from logged operations: grand
// totals, per-member and per-type breakdowns, and quarterly reports.
//
// Every function here is pure. Inputs are never modified and results are
// recomputed on each call.
package report

import (
	"sort"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"github.com/shopspring/decimal"
)

// Totals are the grand totals over a set of operations.
type Totals struct {
	Compensation decimal.Decimal
	Hours        decimal.Decimal
	Operations   int
}

// MemberRow is one member's share of a set of operations.
type MemberRow struct {
	brigade.Member
	Operations int
	Hours      decimal.Decimal
	Total      decimal.Decimal
}

// TypeRow aggregates operations sharing a type label.
type TypeRow struct {
	Type  string
	Count int
	Hours decimal.Decimal
	Total decimal.Decimal
}

// Summary combines the three views of a set of operations.
type Summary struct {
	Totals
	Members []MemberRow
	Types   []TypeRow
}

// ActiveMembers counts members with at least one operation.
func (s Summary) ActiveMembers() int {
	n := 0
	for _, m := range s.Members {
		if m.Operations > 0 {
			n++
		}
	}
	return n
}

// Summarize computes the all-time view. Every member gets a row, including
// those without any operation.
func Summarize(ops []brigade.Operation, members []brigade.Member) Summary {
	return Summary{
		Totals:  TotalsOf(ops),
		Members: ByMember(ops, members, false),
		Types:   ByType(ops),
	}
}

func TotalsOf(ops []brigade.Operation) Totals {
	var t Totals
	for _, op := range ops {
		t.Compensation = t.Compensation.Add(op.Total)
		t.Hours = t.Hours.Add(op.Hours)
	}
	t.Operations = len(ops)
	return t
}

// ByMember returns one row per member in members order, sorted by total
// descending. Equal totals keep member order. With activeOnly set, members
// without operations are left out.
func ByMember(ops []brigade.Operation, members []brigade.Member, activeOnly bool) []MemberRow {
	rows := make([]MemberRow, 0, len(members))
	for _, m := range members {
		row := MemberRow{Member: m}
		for _, op := range ops {
			if op.MemberID != m.ID {
				continue
			}
			row.Operations++
			row.Hours = row.Hours.Add(op.Hours)
			row.Total = row.Total.Add(op.Total)
		}
		if activeOnly && row.Operations == 0 {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// ByType groups operations by their type label, sorted by total descending.
// Equal totals keep the order in which each label first appeared.
func ByType(ops []brigade.Operation) []TypeRow {
	var rows []TypeRow
	index := make(map[string]int)
	for _, op := range ops {
		i, ok := index[op.Type]
		if !ok {
			i = len(rows)
			index[op.Type] = i
			rows = append(rows, TypeRow{Type: op.Type})
		}
		rows[i].Count++
		rows[i].Hours = rows[i].Hours.Add(op.Hours)
		rows[i].Total = rows[i].Total.Add(op.Total)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}
