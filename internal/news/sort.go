package news

import "sort"

// SortByDate orders entries newest first. Entries sharing a date keep the
// order they were found in.
func SortByDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
