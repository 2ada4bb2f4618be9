// Package brigade holds the record shapes of the fire brigade ledger: members,
// the service events they log, and the catalog of event types with their rates.
//
// Records are validated when they are built. Once constructed they are treated
// as valid everywhere else.
package brigade

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNameRequired   = errors.New("name is required")
	ErrRankRequired   = errors.New("rank is required")
	ErrMemberRequired = errors.New("member is required")
	ErrMemberNotFound = errors.New("member not found")
	ErrUnknownType    = errors.New("unknown operation type")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidHours   = errors.New("hours must be a positive number")
)

// Member is a firefighter of the brigade.
type Member struct {
	ID   string
	Name string
	Rank string
}

// NewMember validates the input and assigns a fresh identifier.
func NewMember(name, rank string) (Member, error) {
	name = strings.TrimSpace(name)
	rank = strings.TrimSpace(rank)
	if name == "" {
		return Member{}, ErrNameRequired
	}
	if rank == "" {
		return Member{}, ErrRankRequired
	}
	return Member{ID: uuid.NewString(), Name: name, Rank: rank}, nil
}

// FindMember returns the member with the given id.
func FindMember(members []Member, id string) (Member, bool) {
	for _, m := range members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
