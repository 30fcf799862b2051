package catalog

import (
	"sort"
	"strings"
)

// Criteria holds the user's current search text and tag selection.
type Criteria struct {
	Query string
	Tags  []string
}

// Active reports whether any criterion narrows the catalog.
func (c Criteria) Active() bool {
	return c.Query != "" || len(c.Tags) > 0
}

// Filter returns the products matching c in catalog order. A product matches
// when the query is empty or is a case-insensitive substring of its title,
// description or any tag, and when no tags are selected or at least one of its
// tags is selected. The input slice is never modified.
func Filter(products []Product, c Criteria) []Product {
	query := strings.ToLower(c.Query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(p, query) && matchesTags(p, c.Tags) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Product, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func matchesTags(p Product, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range selected {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

// Tags returns the sorted set of distinct tags across products.
func Tags(products []Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ToggleTag returns a copy of selected with tag removed if present, or
// appended otherwise.
func ToggleTag(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, t := range selected {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
