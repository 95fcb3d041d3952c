// Package catalog filters and sorts an in-memory recipe collection.
//
// Apply is a pure function of its inputs: it never mutates the collection it
// is given and returns the same result for the same query, so callers can
// re-run it on every change of the search box.
package catalog

import (
	"net/url"
	"strings"

	"github.com/pageza/cookbook/backend/internal/model"
)

// All is the sentinel that disables the category and difficulty filters.
const All = "all"

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByTime       SortKey = "time"
	SortByDifficulty SortKey = "difficulty"
)

// ViewMode is a display flag for clients. It does not affect Apply.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Toggle flips between grid and list.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewList {
		return ViewGrid
	}
	return ViewList
}

// Query describes one catalog listing request.
type Query struct {
	SearchTerm string  `json:"search_term"`
	Category   string  `json:"category"`
	Difficulty string  `json:"difficulty"`
	Sort       SortKey `json:"sort"`
}

// DefaultQuery matches everything, sorted by name.
func DefaultQuery() Query {
	return Query{Category: All, Difficulty: All, Sort: SortByName}
}

// Normalize fills empty fields with their defaults.
func (q Query) Normalize() Query {
	if strings.TrimSpace(q.Category) == "" {
		q.Category = All
	}
	if strings.TrimSpace(q.Difficulty) == "" {
		q.Difficulty = All
	}
	if q.Sort == "" {
		q.Sort = SortByName
	}
	return q
}

// ParseQuery reads a query from URL parameters: q (or search), category,
// difficulty and sort.
func ParseQuery(values url.Values) Query {
	term := values.Get("q")
	if term == "" {
		term = values.Get("search")
	}
	return Query{
		SearchTerm: term,
		Category:   values.Get("category"),
		Difficulty: values.Get("difficulty"),
		Sort:       SortKey(values.Get("sort")),
	}.Normalize()
}

// Apply narrows recipes by text, category and difficulty, in that order, then
// sorts the survivors. The result is a new slice.
func Apply(recipes []model.Recipe, q Query) []model.Recipe {
	q = q.Normalize()

	out := make([]model.Recipe, 0, len(recipes))
	term := strings.ToLower(strings.TrimSpace(q.SearchTerm))
	for _, r := range recipes {
		if term != "" && !matchesText(r, term) {
			continue
		}
		if q.Category != All && r.Category != q.Category {
			continue
		}
		if q.Difficulty != All && !matchesDifficulty(r.Difficulty, q.Difficulty) {
			continue
		}
		out = append(out, r)
	}

	sortRecipes(out, q.Sort)
	return out
}

func matchesText(r model.Recipe, term string) bool {
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Category), term)
}

// unknown labels on either side never match
func matchesDifficulty(d model.Difficulty, want string) bool {
	w := model.Difficulty(want)
	return w.Valid() && d.Valid() && d == w
}
