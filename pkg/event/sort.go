package event

import (
	"slices"
	"strings"
)

type SortOption string

const (
	SortByDateAscending  SortOption = "date_asc"
	SortByDateDescending SortOption = "date_desc"
	SortAlphabetically   SortOption = "alphabetical"
	// SortCustom keeps the manually arranged order.
	SortCustom SortOption = "custom"

	DefaultSortOption = SortByDateDescending
)

// ParseSortOption returns the option named by s, or DefaultSortOption for unknown names.
func ParseSortOption(s string) SortOption {
	switch option := SortOption(s); option {
	case SortByDateAscending, SortByDateDescending, SortAlphabetically, SortCustom:
		return option
	default:
		return DefaultSortOption
	}
}

// Sort returns a sorted copy of events. Events without instances are treated as having the
// minimum date. SortCustom returns the events in the given order.
func Sort(events []Event, option SortOption) []Event {
	sorted := slices.Clone(events)
	switch option {
	case SortByDateAscending:
		slices.SortStableFunc(sorted, func(a, b Event) int {
			return a.LatestDate().Compare(b.LatestDate())
		})
	case SortByDateDescending:
		slices.SortStableFunc(sorted, func(a, b Event) int {
			return b.LatestDate().Compare(a.LatestDate())
		})
	case SortAlphabetically:
		slices.SortStableFunc(sorted, func(a, b Event) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	return sorted
}

// reorder puts the events listed in ids first, in the given order, followed by the remaining
// events in their previous order. Unknown and repeated ids are ignored.
func reorder(events []Event, ids []string) []Event {
	byId := make(map[string]Event, len(events))
	for _, e := range events {
		byId[e.Id] = e
	}

	placed := make(map[string]bool, len(ids))
	result := make([]Event, 0, len(events))
	for _, id := range ids {
		e, ok := byId[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		result = append(result, e)
	}
	for _, e := range events {
		if !placed[e.Id] {
			result = append(result, e)
		}
	}
	return result
}
