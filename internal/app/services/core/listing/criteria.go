package listing

import (
	"medicalcv-service/internal/pkg/constvars"
	"sort"
	"strings"
)

// Criteria is the live filter of one list screen.
type Criteria struct {
	Search     string
	Categories map[string]string
}

// active drops empty and "all" category selections.
func (c Criteria) active() map[string]string {
	out := make(map[string]string, len(c.Categories))
	for field, value := range c.Categories {
		if value == "" || strings.EqualFold(value, constvars.CategoryFilterAll) {
			continue
		}
		out[field] = value
	}
	return out
}

func matchesSearch[T any](d *Descriptor[T], item T, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range d.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesCategories[T any](d *Descriptor[T], item T, selected map[string]string) bool {
	for field, value := range selected {
		extract, ok := d.Categories[field]
		if !ok {
			continue
		}
		if !strings.EqualFold(extract(item), value) {
			return false
		}
	}
	return true
}

// filter returns a fresh slice; base is never modified.
func filter[T any](d *Descriptor[T], base []T, criteria Criteria) []T {
	selected := criteria.active()
	out := make([]T, 0, len(base))
	for _, item := range base {
		if matchesSearch(d, item, criteria.Search) && matchesCategories(d, item, selected) {
			out = append(out, item)
		}
	}
	return out
}

// categoryOptions lists the distinct non-empty values per category field, sorted.
func categoryOptions[T any](d *Descriptor[T], base []T) map[string][]string {
	if len(d.Categories) == 0 {
		return nil
	}
	options := make(map[string][]string, len(d.Categories))
	for field, extract := range d.Categories {
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, item := range base {
			value := extract(item)
			if value == "" {
				continue
			}
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
		sort.Strings(values)
		options[field] = values
	}
	return options
}
