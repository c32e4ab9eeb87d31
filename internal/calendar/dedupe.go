package calendar

import "strings"

// similarityThreshold is the minimum token overlap for two titles to count
// as the same event.
const similarityThreshold = 0.6

// collapseDuplicates merges near-duplicate entries that appear when the same
// event is published on multiple calendars: same location, same start time,
// and highly similar titles collapse into one event. The first occurrence
// wins its slot; the merge keeps the longer description and any URL.
func collapseDuplicates(events []Event) []Event {
	merged := make([]Event, 0, len(events))

	for _, ev := range events {
		matched := false
		for i := range merged {
			if !sameEvent(merged[i], ev) {
				continue
			}
			if len(ev.Description) > len(merged[i].Description) {
				merged[i].Description = ev.Description
			}
			if merged[i].URL == "" {
				merged[i].URL = ev.URL
			}
			matched = true
			break
		}
		if !matched {
			merged = append(merged, ev)
		}
	}

	return merged
}

func sameEvent(a, b Event) bool {
	if !a.StartDate.Equal(b.StartDate) {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(a.Location), strings.TrimSpace(b.Location)) {
		return false
	}
	return titleSimilarity(a.Title, b.Title) >= similarityThreshold
}

// titleSimilarity is the Jaccard overlap of the lowercased word sets.
func titleSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,:;!?\"'()[]")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}
