package logic

import (
	"strings"

	"pickwise/internal/domain"
)

// Prefix filters narrow the match to a single field
const (
	groupPrefix = "group:"
	tagPrefix   = "tag:"
	keyPrefix   = "key:"
)

// MatchesFilter checks if an item matches the given filter query. Whitespace
// separated terms must all match.
func MatchesFilter(item domain.Item, filterQuery string) bool {
	for _, term := range strings.Fields(strings.ToLower(filterQuery)) {
		if !matchesTerm(item, term) {
			return false
		}
	}
	return true
}

func matchesTerm(item domain.Item, term string) bool {
	switch {
	case strings.HasPrefix(term, groupPrefix):
		return strings.Contains(strings.ToLower(item.Group), strings.TrimPrefix(term, groupPrefix))
	case strings.HasPrefix(term, tagPrefix):
		tag := strings.TrimPrefix(term, tagPrefix)
		for _, t := range item.Tags {
			if strings.EqualFold(t, tag) {
				return true
			}
		}
		return false
	case strings.HasPrefix(term, keyPrefix):
		return strings.EqualFold(item.Key, strings.TrimPrefix(term, keyPrefix))
	}

	// Regular filter - check key, label, group, description, tags
	if strings.Contains(strings.ToLower(item.Key), term) ||
		strings.Contains(strings.ToLower(item.Label), term) ||
		strings.Contains(strings.ToLower(item.Group), term) ||
		strings.Contains(strings.ToLower(item.Description), term) {
		return true
	}
	for _, t := range item.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// FilterItems returns the items matching query, keeping their order
func FilterItems(items []domain.Item, query string) []domain.Item {
	if strings.TrimSpace(query) == "" {
		return append([]domain.Item(nil), items...)
	}
	result := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if MatchesFilter(item, query) {
			result = append(result, item)
		}
	}
	return result
}
