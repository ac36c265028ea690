package logic

import (
	"sort"
	"strings"

	"pickwise/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByCatalog SortMode = iota
	SortByKey
	SortByLabel
	SortByGroup
)

var sortModeNames = []string{"catalog", "key", "label", "group"}

// String returns the sort mode name
func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return "unknown"
	}
	return sortModeNames[m]
}

// Next cycles to the following sort mode
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// SortItems returns a sorted copy of items. Catalog order leaves them as is.
// Ties keep catalog order.
func SortItems(items []domain.Item, mode SortMode) []domain.Item {
	sorted := append([]domain.Item(nil), items...)
	switch mode {
	case SortByKey:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Key) < strings.ToLower(sorted[j].Key)
		})
	case SortByLabel:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].DisplayName()) < strings.ToLower(sorted[j].DisplayName())
		})
	case SortByGroup:
		sort.SliceStable(sorted, func(i, j int) bool {
			gi, gj := strings.ToLower(sorted[i].Group), strings.ToLower(sorted[j].Group)
			if gi != gj {
				// Ungrouped items go last
				if gi == "" || gj == "" {
					return gj == ""
				}
				return gi < gj
			}
			return strings.ToLower(sorted[i].DisplayName()) < strings.ToLower(sorted[j].DisplayName())
		})
	}
	return sorted
}
