package portfolio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaultState(t *testing.T) {
	view := Apply(sampleCatalog(t), NewQueryState())

	assert.Equal(t, 9, view.FilteredCount)
	assert.Equal(t, 9, view.TotalCount)
	assert.False(t, view.HasActiveFilters)
	assert.Zero(t, view.ActiveFilterCount)
	if diff := cmp.Diff([]string{"1", "2", "3", "7", "9", "4", "5", "6", "8"}, ids(view.Ventures)); diff != "" {
		t.Errorf("featured order mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyScenarios(t *testing.T) {
	tests := []struct {
		name  string
		setup func(q *QueryState)
		want  []string
	}{
		{
			name:  "search nano",
			setup: func(q *QueryState) { q.SetSearch("nano") },
			want:  []string{"3"},
		},
		{
			name:  "category saas",
			setup: func(q *QueryState) { q.ToggleCategory(CategorySaaS) },
			want:  []string{"7", "9", "8"},
		},
		{
			name:  "newest",
			setup: func(q *QueryState) { q.SetSort(SortNewest) },
			want:  []string{"6", "2", "5", "3", "7", "1", "8", "4", "9"},
		},
		{
			name:  "stage puts exits first",
			setup: func(q *QueryState) { q.SetSort(SortStage) },
			want:  []string{"4", "9", "3", "7", "1", "5", "2", "8", "6"},
		},
		{
			name:  "category key ascending",
			setup: func(q *QueryState) { q.SetSort(SortCategory) },
			want:  []string{"2", "6", "5", "1", "3", "4", "7", "8", "9"},
		},
		{
			name: "category and stage combine",
			setup: func(q *QueryState) {
				q.ToggleCategory(CategorySaaS)
				q.ToggleStage(StageExit)
			},
			want: []string{"9"},
		},
		{
			name: "two stages",
			setup: func(q *QueryState) {
				q.ToggleStage(StageMVP)
				q.ToggleStage(StageIdeation)
				q.SetSort(SortNewest)
			},
			want: []string{"6", "2", "8"},
		},
		{
			name:  "search matches tagline",
			setup: func(q *QueryState) { q.SetSearch("board management") },
			want:  []string{"9"},
		},
		{
			name:  "search matches description",
			setup: func(q *QueryState) { q.SetSearch("spreadsheets") },
			want:  []string{"7"},
		},
		{
			name: "all facets selected is unfiltered",
			setup: func(q *QueryState) {
				for _, c := range Categories {
					q.ToggleCategory(c)
				}
				for _, s := range Stages {
					q.ToggleStage(s)
				}
			},
			want: []string{"1", "2", "3", "7", "9", "4", "5", "6", "8"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueryState()
			tt.setup(q)
			view := Apply(sampleCatalog(t), q)
			if diff := cmp.Diff(tt.want, ids(view.Ventures)); diff != "" {
				t.Errorf("Apply mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), view.FilteredCount)
		})
	}
}

func TestApplyNoMatch(t *testing.T) {
	q := NewQueryState()
	q.SetSearch("zzz-no-match")

	view := Apply(sampleCatalog(t), q)

	assert.True(t, view.Empty())
	assert.Zero(t, view.FilteredCount)
	assert.Equal(t, 9, view.TotalCount)
	assert.True(t, view.HasActiveFilters)
	assert.Equal(t, 1, view.ActiveFilterCount)
}

func TestApplyIdempotent(t *testing.T) {
	c := sampleCatalog(t)
	q := NewQueryState()
	q.SetSearch("a")
	q.ToggleStage(StageGrowth)
	q.SetSort(SortNewest)

	first := Apply(c, q)
	second := Apply(c, q)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestFilterEmptyStateIsIdentity(t *testing.T) {
	all := sampleVentures()
	got := Filter(all, NewQueryState())
	if diff := cmp.Diff(all, got); diff != "" {
		t.Errorf("empty filter changed the catalog (-want +got):\n%s", diff)
	}
}

func TestFilterNarrowsMonotonically(t *testing.T) {
	all := sampleVentures()
	steps := []func(q *QueryState){
		func(q *QueryState) { q.SetSearch("s") },
		func(q *QueryState) { q.ToggleCategory(CategorySaaS) },
		func(q *QueryState) { q.ToggleStage(StageMVP) },
		func(q *QueryState) { q.SetSearch("sh") },
	}

	q := NewQueryState()
	prev := Filter(all, q)
	for i, step := range steps {
		step(q)
		got := Filter(all, q)
		assert.LessOrEqual(t, len(got), len(prev), "step %d grew the result", i)
		assertSubset(t, prev, got)
		prev = got
	}
	assert.Equal(t, []string{"8"}, ids(prev))
}

func TestFilterAddingConstraintNeverGrows(t *testing.T) {
	all := sampleVentures()
	base := NewQueryState()
	base.ToggleStage(StageGrowth)
	baseline := Filter(all, base)

	add := []func(q *QueryState){
		func(q *QueryState) { q.SetSearch("care") },
		func(q *QueryState) { q.ToggleCategory(CategoryEducation) },
		func(q *QueryState) { q.ToggleCategory(CategoryAI) },
	}
	for i, fn := range add {
		q := base.Clone()
		fn(q)
		got := Filter(all, q)
		assert.LessOrEqual(t, len(got), len(baseline), "constraint %d", i)
		assertSubset(t, baseline, got)
	}
}

func assertSubset(t *testing.T, super, sub []Venture) {
	t.Helper()
	in := make(map[string]bool, len(super))
	for _, v := range super {
		in[v.ID] = true
	}
	for _, v := range sub {
		assert.True(t, in[v.ID], "venture %s not in superset", v.ID)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	all := sampleVentures()

	lower := NewQueryState()
	lower.SetSearch("vctronics")
	upper := NewQueryState()
	upper.SetSearch("VCTRONICS")

	got := Filter(all, lower)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	if diff := cmp.Diff(got, Filter(all, upper)); diff != "" {
		t.Errorf("case changed result (-lower +upper):\n%s", diff)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	all := sampleVentures()
	q := NewQueryState()
	q.ToggleCategory(CategorySaaS)
	_ = Filter(all, q)
	if diff := cmp.Diff(sampleVentures(), all); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestSortStable(t *testing.T) {
	ventures := []Venture{
		{ID: "a", Founded: "2020", Featured: true, Stage: StageExit, Category: CategorySaaS},
		{ID: "b", Founded: "2021", Featured: false, Stage: StageMVP, Category: CategoryAI},
		{ID: "c", Founded: "2020", Featured: true, Stage: StageExit, Category: CategorySaaS},
		{ID: "d", Founded: "2021", Featured: false, Stage: StageMVP, Category: CategoryAI},
	}
	tests := []struct {
		opt  SortOption
		want []string
	}{
		{SortFeatured, []string{"a", "c", "b", "d"}},
		{SortNewest, []string{"b", "d", "a", "c"}},
		{SortStage, []string{"a", "c", "b", "d"}},
		{SortCategory, []string{"b", "d", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.opt), func(t *testing.T) {
			list := append([]Venture(nil), ventures...)
			Sort(list, tt.opt)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestSortNewestUnparsableYearSortsLast(t *testing.T) {
	list := []Venture{
		{ID: "x", Founded: "n/a"},
		{ID: "y", Founded: "1999"},
	}
	Sort(list, SortNewest)
	assert.Equal(t, []string{"y", "x"}, ids(list))
}
