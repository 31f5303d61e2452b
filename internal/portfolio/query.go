package portfolio

// QueryState is the interactive filter and sort configuration of one
// viewing session. The zero value is not ready; use NewQueryState.
type QueryState struct {
	search     string
	categories map[Category]struct{}
	stages     map[Stage]struct{}
	sort       SortOption
}

func NewQueryState() *QueryState {
	return &QueryState{
		categories: make(map[Category]struct{}),
		stages:     make(map[Stage]struct{}),
		sort:       DefaultSort,
	}
}

// NewQuery builds a query state from raw keys, as they arrive from URL
// parameters or command-line flags. A category or stage given more than
// once is selected once. An empty sort means the default. Unknown keys
// fail with the matching Err* sentinel.
func NewQuery(search string, categories, stages []string, sort string) (*QueryState, error) {
	q := NewQueryState()
	q.SetSearch(search)

	for _, raw := range categories {
		c, err := ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		q.categories[c] = struct{}{}
	}
	for _, raw := range stages {
		s, err := ParseStage(raw)
		if err != nil {
			return nil, err
		}
		q.stages[s] = struct{}{}
	}

	opt, err := ParseSort(sort)
	if err != nil {
		return nil, err
	}
	q.sort = opt
	return q, nil
}

// Clone returns an independent copy.
func (q *QueryState) Clone() *QueryState {
	c := NewQueryState()
	c.search = q.search
	c.sort = q.sort
	for k := range q.categories {
		c.categories[k] = struct{}{}
	}
	for k := range q.stages {
		c.stages[k] = struct{}{}
	}
	return c
}

func (q *QueryState) Search() string { return q.search }

// SetSearch stores text verbatim. No trimming and no minimum length.
func (q *QueryState) SetSearch(text string) {
	q.search = text
}

func (q *QueryState) ToggleCategory(c Category) {
	if _, ok := q.categories[c]; ok {
		delete(q.categories, c)
		return
	}
	q.categories[c] = struct{}{}
}

func (q *QueryState) ToggleStage(s Stage) {
	if _, ok := q.stages[s]; ok {
		delete(q.stages, s)
		return
	}
	q.stages[s] = struct{}{}
}

func (q *QueryState) Sort() SortOption { return q.sort }

func (q *QueryState) SetSort(o SortOption) {
	q.sort = o
}

// Clear drops the search text and every facet selection. The sort
// option is left alone.
func (q *QueryState) Clear() {
	q.search = ""
	clear(q.categories)
	clear(q.stages)
}

func (q *QueryState) CategorySelected(c Category) bool {
	_, ok := q.categories[c]
	return ok
}

func (q *QueryState) StageSelected(s Stage) bool {
	_, ok := q.stages[s]
	return ok
}

// SelectedCategories returns the selection in vocabulary order.
func (q *QueryState) SelectedCategories() []Category {
	var out []Category
	for _, c := range Categories {
		if q.CategorySelected(c) {
			out = append(out, c)
		}
	}
	return out
}

// SelectedStages returns the selection in vocabulary order.
func (q *QueryState) SelectedStages() []Stage {
	var out []Stage
	for _, s := range Stages {
		if q.StageSelected(s) {
			out = append(out, s)
		}
	}
	return out
}

func (q *QueryState) HasActiveFilters() bool {
	return q.search != "" || len(q.categories) > 0 || len(q.stages) > 0
}

// ActiveFilterCount is the badge number: one per selected facet value
// plus one for a non-empty search.
func (q *QueryState) ActiveFilterCount() int {
	n := len(q.categories) + len(q.stages)
	if q.search != "" {
		n++
	}
	return n
}
