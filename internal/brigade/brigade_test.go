package brigade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMember(t *testing.T, name, rank string) Member {
	t.Helper()
	m, err := NewMember(name, rank)
	require.NoError(t, err)
	return m
}

func TestNewMember(t *testing.T) {
	m, err := NewMember("  Jan Kowalski ", " Dowódca ")
	require.NoError(t, err)
	assert.Equal(t, "Jan Kowalski", m.Name)
	assert.Equal(t, "Dowódca", m.Rank)
	assert.NotEmpty(t, m.ID)

	other := mustMember(t, "Anna Nowak", "Strażak")
	assert.NotEqual(t, m.ID, other.ID)
}

func TestNewMemberRequiresFields(t *testing.T) {
	_, err := NewMember(" ", "Strażak")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewMember("Jan", "")
	assert.ErrorIs(t, err, ErrRankRequired)
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	require.Len(t, cat, 4)

	fire, ok := cat.Lookup("fire")
	require.True(t, ok)
	assert.Equal(t, "Akcja ratownicza", fire.Label)
	assert.True(t, fire.Rate.Equal(decimal.NewFromInt(25)))

	_, ok = cat.Lookup("missing")
	assert.False(t, ok)
}

func TestNewOperationSnapshotsRateAndTotal(t *testing.T) {
	m := mustMember(t, "Jan", "Strażak")
	typ := OperationType{Key: "fire", Label: "Akcja ratownicza", Rate: decimal.NewFromInt(25)}
	date := time.Date(2024, 2, 10, 17, 45, 0, 0, time.UTC)

	op, err := NewOperation(m, typ, date, decimal.RequireFromString("2.5"))
	require.NoError(t, err)

	assert.Equal(t, m.ID, op.MemberID)
	assert.Equal(t, "Jan", op.MemberName)
	assert.Equal(t, "fire", op.TypeKey)
	assert.Equal(t, "Akcja ratownicza", op.Type)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), op.Date)
	assert.True(t, op.Total.Equal(decimal.RequireFromString("62.5")), "total = %s", op.Total)

	// Changing the catalog entry afterwards does not touch the record.
	typ.Rate = decimal.NewFromInt(100)
	assert.True(t, op.Rate.Equal(decimal.NewFromInt(25)))
	assert.True(t, op.Total.Equal(decimal.RequireFromString("62.5")))
}

func TestNewOperationRejectsInvalidInput(t *testing.T) {
	m := mustMember(t, "Jan", "Strażak")
	typ := DefaultCatalog()[0]
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewOperation(Member{}, typ, date, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrMemberRequired)

	_, err = NewOperation(m, OperationType{}, date, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = NewOperation(m, typ, time.Time{}, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NewOperation(m, typ, date, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = NewOperation(m, typ, date, decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestDraftOperation(t *testing.T) {
	m := mustMember(t, "Jan", "Strażak")
	members := []Member{m}
	cat := DefaultCatalog()

	op, err := Draft{MemberID: m.ID, TypeKey: "training", Date: "2024-05-01", Hours: "1,5"}.Operation(members, cat)
	require.NoError(t, err)
	assert.True(t, op.Total.Equal(decimal.NewFromInt(12)), "total = %s", op.Total)
	assert.Equal(t, "Szkolenie/ćwiczenie", op.Type)

	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"no member", Draft{TypeKey: "fire", Date: "2024-01-01", Hours: "1"}, ErrMemberRequired},
		{"unknown member", Draft{MemberID: "nope", TypeKey: "fire", Date: "2024-01-01", Hours: "1"}, ErrMemberNotFound},
		{"unknown type", Draft{MemberID: m.ID, TypeKey: "party", Date: "2024-01-01", Hours: "1"}, ErrUnknownType},
		{"bad date", Draft{MemberID: m.ID, TypeKey: "fire", Date: "01.01.2024", Hours: "1"}, ErrInvalidDate},
		{"empty hours", Draft{MemberID: m.ID, TypeKey: "fire", Date: "2024-01-01", Hours: ""}, ErrInvalidHours},
		{"text hours", Draft{MemberID: m.ID, TypeKey: "fire", Date: "2024-01-01", Hours: "dużo"}, ErrInvalidHours},
		{"negative hours", Draft{MemberID: m.ID, TypeKey: "fire", Date: "2024-01-01", Hours: "-2"}, ErrInvalidHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.draft.Operation(members, cat)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{"2.5", "2.5"},
		{"2,5", "2.5"},
		{" 0.5 ", "0.5"},
	}
	for _, tt := range tests {
		got, err := ParseHours(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseHours(%q) = %s", tt.in, got)
	}

	for _, bad := range []string{"", "0", "-1", "abc", "1.2.3"} {
		_, err := ParseHours(bad)
		assert.ErrorIs(t, err, ErrInvalidHours, bad)
	}
}

func TestDayKeepsCalendarDate(t *testing.T) {
	warsaw := time.FixedZone("CET", 3600)
	late := time.Date(2024, 3, 31, 23, 30, 0, 0, warsaw)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), Day(late))
}

// ============================================================
// Roster
// ============================================================

func TestRosterDeleteMemberCascades(t *testing.T) {
	a := mustMember(t, "A", "Strażak")
	b := mustMember(t, "B", "Strażak")
	cat := DefaultCatalog()

	r := &Roster{}
	r.AddMember(a)
	r.AddMember(b)

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, m := range []Member{a, a, b} {
		op, err := NewOperation(m, cat[0], day, decimal.NewFromInt(1))
		require.NoError(t, err)
		require.NoError(t, r.AddOperation(op))
	}

	removed := r.DeleteMember(a.ID)
	assert.Equal(t, 2, removed)
	require.Len(t, r.Members, 1)
	assert.Equal(t, b.ID, r.Members[0].ID)
	require.Len(t, r.Operations, 1)
	assert.Equal(t, b.ID, r.Operations[0].MemberID)
}

func TestRosterDeleteKeepsEarlierSlices(t *testing.T) {
	a := mustMember(t, "A", "Strażak")
	b := mustMember(t, "B", "Strażak")
	r := &Roster{}
	r.AddMember(a)
	r.AddMember(b)

	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	opA, err := NewOperation(a, DefaultCatalog()[0], day, decimal.NewFromInt(1))
	require.NoError(t, err)
	opB, err := NewOperation(b, DefaultCatalog()[0], day, decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, r.AddOperation(opA))
	require.NoError(t, r.AddOperation(opB))

	members := r.Members
	ops := r.Operations

	r.DeleteMember(a.ID)
	require.Len(t, members, 2)
	assert.Equal(t, a.ID, members[0].ID)
	assert.Equal(t, b.ID, members[1].ID)
	assert.Equal(t, opA.ID, ops[0].ID)
	assert.Equal(t, opB.ID, ops[1].ID)

	ops = r.Operations
	require.True(t, r.DeleteOperation(opB.ID))
	require.Len(t, ops, 1)
	assert.Equal(t, opB.ID, ops[0].ID)
	assert.Empty(t, r.Operations)
}

func TestRosterAddOperationUnknownMember(t *testing.T) {
	r := &Roster{}
	op := Operation{ID: "x", MemberID: "ghost"}
	assert.ErrorIs(t, r.AddOperation(op), ErrMemberNotFound)
	assert.Empty(t, r.Operations)
}

func TestRosterDeleteOperation(t *testing.T) {
	a := mustMember(t, "A", "Strażak")
	r := &Roster{}
	r.AddMember(a)
	op, err := NewOperation(a, DefaultCatalog()[1], time.Now(), decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, r.AddOperation(op))

	assert.True(t, r.DeleteOperation(op.ID))
	assert.False(t, r.DeleteOperation(op.ID))
	assert.Empty(t, r.Operations)
	assert.Len(t, r.Members, 1)
}
