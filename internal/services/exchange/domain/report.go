package domain

import "sort"

// Report is a read-only view over a Document used by the admin panel.
type Report struct {
	Participants []string
	// Assignments in participant order, then any givers off the list.
	Assignments []Pair
	// Assigned lists givers that already have a receiver.
	Assigned []string
	// Pending lists participants without a receiver yet.
	Pending []string
	// Received lists every receiver value, one per assignment.
	Received []string
	// NotReceived lists participants nobody is giving to.
	NotReceived []string
	// Duplicates lists participants assigned to more than one giver. Non-empty
	// means the data is corrupt.
	Duplicates []string
	Complete   bool
}

// BuildReport derives the diagnostic views for doc without modifying it.
func BuildReport(doc Document) Report {
	report := Report{
		Participants: append([]string(nil), doc.Participants...),
		Assignments:  orderedPairs(doc),
	}

	counts := make(map[string]int, len(doc.Assignments))
	for _, pair := range report.Assignments {
		report.Assigned = append(report.Assigned, pair.Giver)
		report.Received = append(report.Received, pair.Receiver)
		counts[pair.Receiver]++
	}

	for _, name := range doc.Participants {
		if _, ok := doc.Assignments[name]; !ok {
			report.Pending = append(report.Pending, name)
		}
		switch n := counts[name]; {
		case n == 0:
			report.NotReceived = append(report.NotReceived, name)
		case n > 1:
			report.Duplicates = append(report.Duplicates, name)
		}
	}

	report.Complete = len(doc.Assignments) == len(doc.Participants) &&
		len(counts) == len(report.Received) &&
		len(report.Pending) == 0 &&
		len(report.NotReceived) == 0
	return report
}

func orderedPairs(doc Document) []Pair {
	pairs := make([]Pair, 0, len(doc.Assignments))
	listed := make(map[string]struct{}, len(doc.Participants))
	for _, name := range doc.Participants {
		listed[name] = struct{}{}
		if receiver, ok := doc.Assignments[name]; ok {
			pairs = append(pairs, Pair{Giver: name, Receiver: receiver})
		}
	}
	var extra []Pair
	for giver, receiver := range doc.Assignments {
		if _, ok := listed[giver]; !ok {
			extra = append(extra, Pair{Giver: giver, Receiver: receiver})
		}
	}
	sortPairs(extra)
	return append(pairs, extra...)
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Giver != pairs[j].Giver {
			return pairs[i].Giver < pairs[j].Giver
		}
		return pairs[i].Receiver < pairs[j].Receiver
	})
}
