package domain

// Document is the single persisted state of an exchange.
type Document struct {
	Participants []string          `json:"participants"`
	Assignments  map[string]string `json:"assignments"`
}

// Pair is one giver → receiver assignment.
type Pair struct {
	Giver    string
	Receiver string
}

// NewDocument returns a fresh document for roster with no assignments.
func NewDocument(roster Roster) Document {
	return Document{
		Participants: roster.Names(),
		Assignments:  map[string]string{},
	}
}

// Clone returns a deep copy of d. A nil assignment map becomes empty.
func (d Document) Clone() Document {
	out := Document{
		Participants: make([]string, len(d.Participants)),
		Assignments:  make(map[string]string, len(d.Assignments)),
	}
	copy(out.Participants, d.Participants)
	for giver, receiver := range d.Assignments {
		out.Assignments[giver] = receiver
	}
	return out
}

// Receivers returns the set of names already assigned as a receiver.
func (d Document) Receivers() map[string]struct{} {
	out := make(map[string]struct{}, len(d.Assignments))
	for _, receiver := range d.Assignments {
		out[receiver] = struct{}{}
	}
	return out
}

// Reconcile aligns doc with roster. When the stored participant list differs
// from the roster, assignments naming anyone off the roster are dropped and
// the participant list is replaced. It returns the reconciled copy, the
// dropped pairs and whether anything changed.
func Reconcile(doc Document, roster Roster) (Document, []Pair, bool) {
	out := doc.Clone()
	if roster.Equal(doc.Participants) {
		return out, nil, false
	}

	var removed []Pair
	for giver, receiver := range doc.Assignments {
		if roster.Contains(giver) && roster.Contains(receiver) {
			continue
		}
		delete(out.Assignments, giver)
		removed = append(removed, Pair{Giver: giver, Receiver: receiver})
	}
	sortPairs(removed)
	out.Participants = roster.Names()
	return out, removed, true
}
