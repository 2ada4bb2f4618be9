package brigade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in forms, storage and exports.
const DateLayout = "2006-01-02"

// Operation is a single logged service event.
//
// MemberName, TypeKey, Type and Rate are copies taken when the event is logged,
// and Total is fixed at Hours * Rate at that moment. Later catalog or member
// changes never alter an existing record.
type Operation struct {
	ID         string
	MemberID   string
	MemberName string
	Date       time.Time
	TypeKey    string
	Type       string
	Hours      decimal.Decimal
	Rate       decimal.Decimal
	Total      decimal.Decimal
}

// NewOperation snapshots the member and type into a new record.
func NewOperation(m Member, t OperationType, date time.Time, hours decimal.Decimal) (Operation, error) {
	if m.ID == "" {
		return Operation{}, ErrMemberRequired
	}
	if t.Key == "" {
		return Operation{}, ErrUnknownType
	}
	if date.IsZero() {
		return Operation{}, ErrInvalidDate
	}
	if !hours.IsPositive() {
		return Operation{}, ErrInvalidHours
	}
	return Operation{
		ID:         uuid.NewString(),
		MemberID:   m.ID,
		MemberName: m.Name,
		Date:       Day(date),
		TypeKey:    t.Key,
		Type:       t.Label,
		Hours:      hours,
		Rate:       t.Rate,
		Total:      hours.Mul(t.Rate),
	}, nil
}

// Draft is operation input as typed into a form, before validation.
type Draft struct {
	MemberID string
	TypeKey  string
	Date     string
	Hours    string
}

// Operation validates the draft against the known members and catalog and
// builds the record.
func (d Draft) Operation(members []Member, cat Catalog) (Operation, error) {
	if strings.TrimSpace(d.MemberID) == "" {
		return Operation{}, ErrMemberRequired
	}
	m, ok := FindMember(members, d.MemberID)
	if !ok {
		return Operation{}, ErrMemberNotFound
	}
	t, ok := cat.Lookup(d.TypeKey)
	if !ok {
		return Operation{}, ErrUnknownType
	}
	date, err := ParseDate(d.Date)
	if err != nil {
		return Operation{}, err
	}
	hours, err := ParseHours(d.Hours)
	if err != nil {
		return Operation{}, err
	}
	return NewOperation(m, t, date, hours)
}

// Day drops the time of day, keeping the calendar date as seen in t's location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseHours accepts both "2.5" and "2,5". Zero and negative values are rejected.
func ParseHours(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Decimal{}, ErrInvalidHours
	}
	h, err := decimal.NewFromString(s)
	if err != nil || !h.IsPositive() {
		return decimal.Decimal{}, ErrInvalidHours
	}
	return h, nil
}
