package brigade

// Roster is the application state: every member and every logged operation.
// Members keep the order in which they were added. Deletes build new slices,
// so slices taken from a Roster earlier are never rewritten.
type Roster struct {
	Members    []Member
	Operations []Operation
}

// Member looks up a member by id.
func (r *Roster) Member(id string) (Member, bool) {
	return FindMember(r.Members, id)
}

func (r *Roster) AddMember(m Member) {
	r.Members = append(r.Members, m)
}

// AddOperation appends op. The referenced member must exist.
func (r *Roster) AddOperation(op Operation) error {
	if _, ok := r.Member(op.MemberID); !ok {
		return ErrMemberNotFound
	}
	r.Operations = append(r.Operations, op)
	return nil
}

// DeleteOperation removes the operation with the given id and reports whether
// it was present.
func (r *Roster) DeleteOperation(id string) bool {
	kept := make([]Operation, 0, len(r.Operations))
	found := false
	for _, op := range r.Operations {
		if op.ID == id {
			found = true
			continue
		}
		kept = append(kept, op)
	}
	r.Operations = kept
	return found
}

// DeleteMember removes the member together with all of their operations and
// returns how many operations went with them.
func (r *Roster) DeleteMember(id string) int {
	members := make([]Member, 0, len(r.Members))
	for _, m := range r.Members {
		if m.ID != id {
			members = append(members, m)
		}
	}
	r.Members = members

	ops := make([]Operation, 0, len(r.Operations))
	removed := 0
	for _, op := range r.Operations {
		if op.MemberID == id {
			removed++
			continue
		}
		ops = append(ops, op)
	}
	r.Operations = ops
	return removed
}
