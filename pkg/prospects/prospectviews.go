// FILE: prospects/views.go

package prospects

import (
	"slices"
	"strings"
)

// FilterProspects returns the prospects matching f, preserving order.
// The input slice is not modified.
func FilterProspects(people []Prospect, f Filter) []Prospect {
	out := make([]Prospect, 0, len(people))
	for _, p := range people {
		switch f {
		case FilterContacted:
			if !p.IsContacted {
				continue
			}
		case FilterUncontacted:
			if p.IsContacted {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// SortProspects returns a stably sorted copy of people.
// SortByName uses Prospect.Less; SortByEmail compares addresses case-sensitively.
func SortProspects(people []Prospect, order SortOrder) []Prospect {
	out := append([]Prospect(nil), people...)
	switch order {
	case SortByEmail:
		slices.SortStableFunc(out, func(a, b Prospect) int {
			return strings.Compare(a.EmailAddress, b.EmailAddress)
		})
	default:
		slices.SortStableFunc(out, func(a, b Prospect) int {
			switch {
			case a.Less(b):
				return -1
			case b.Less(a):
				return 1
			}
			return 0
		})
	}
	return out
}
