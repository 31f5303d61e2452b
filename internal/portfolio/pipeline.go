package portfolio

import (
	"slices"
	"strings"
)

// View is the pipeline output handed to a renderer.
type View struct {
	Ventures          []Venture `json:"ventures"`
	FilteredCount     int       `json:"filteredCount"`
	TotalCount        int       `json:"totalCount"`
	HasActiveFilters  bool      `json:"hasActiveFilters"`
	ActiveFilterCount int       `json:"activeFilterCount"`
}

// Empty reports whether nothing matched.
func (v View) Empty() bool {
	return len(v.Ventures) == 0
}

// Apply filters the catalog by q and sorts the result. It never fails;
// zero matches is a valid outcome.
func Apply(c *Catalog, q *QueryState) View {
	list := Filter(c.All(), q)
	Sort(list, q.Sort())
	return View{
		Ventures:          list,
		FilteredCount:     len(list),
		TotalCount:        c.Len(),
		HasActiveFilters:  q.HasActiveFilters(),
		ActiveFilterCount: q.ActiveFilterCount(),
	}
}

// Filter keeps the ventures matching the search text, then the category
// selection, then the stage selection. Input order is preserved and the
// input slice is not modified.
func Filter(ventures []Venture, q *QueryState) []Venture {
	out := make([]Venture, 0, len(ventures))
	needle := strings.ToLower(q.search)
	for _, v := range ventures {
		if needle != "" && !matchesText(v, needle) {
			continue
		}
		if len(q.categories) > 0 && !q.CategorySelected(v.Category) {
			continue
		}
		if len(q.stages) > 0 && !q.StageSelected(v.Stage) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// needle must already be lower-cased.
func matchesText(v Venture, needle string) bool {
	return strings.Contains(strings.ToLower(v.Name), needle) ||
		strings.Contains(strings.ToLower(v.Tagline), needle) ||
		strings.Contains(strings.ToLower(v.Description), needle)
}

// Sort orders ventures in place. Ties keep their existing relative order.
func Sort(ventures []Venture, o SortOption) {
	slices.SortStableFunc(ventures, comparator(o))
}

func comparator(o SortOption) func(a, b Venture) int {
	switch o {
	case SortNewest:
		return func(a, b Venture) int {
			return b.FoundedYear() - a.FoundedYear()
		}
	case SortStage:
		return func(a, b Venture) int {
			return a.Stage.sortRank() - b.Stage.sortRank()
		}
	case SortCategory:
		return func(a, b Venture) int {
			return strings.Compare(string(a.Category), string(b.Category))
		}
	default:
		return func(a, b Venture) int {
			return featuredRank(a) - featuredRank(b)
		}
	}
}

func featuredRank(v Venture) int {
	if v.Featured {
		return 0
	}
	return 1
}
