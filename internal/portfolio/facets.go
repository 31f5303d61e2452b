package portfolio

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownStage    = errors.New("unknown stage")
	ErrUnknownSort     = errors.New("unknown sort option")
)

type Category string

const (
	CategoryHealth    Category = "health"
	CategoryAI        Category = "ai"
	CategoryNanotech  Category = "nanotech"
	CategoryEducation Category = "education"
	CategoryConsumer  Category = "consumer"
	CategoryResearch  Category = "research"
	CategorySaaS      Category = "saas"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryAI,
	CategoryNanotech,
	CategoryEducation,
	CategoryConsumer,
	CategoryResearch,
	CategorySaaS,
}

var categoryLabels = map[Category]string{
	CategoryHealth:    "Health Tech",
	CategoryAI:        "Artificial Intelligence",
	CategoryNanotech:  "Nanotechnology",
	CategoryEducation: "Education",
	CategoryConsumer:  "Consumer",
	CategoryResearch:  "Research",
	CategorySaaS:      "SaaS",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

type Stage string

const (
	StageIdeation Stage = "ideation"
	StageMVP      Stage = "mvp"
	StageGrowth   Stage = "growth"
	StageScale    Stage = "scale"
	StageExit     Stage = "exit"
)

// Stages lists every valid stage by ascending maturity.
var Stages = []Stage{
	StageIdeation,
	StageMVP,
	StageGrowth,
	StageScale,
	StageExit,
}

var stageLabels = map[Stage]string{
	StageIdeation: "Ideation",
	StageMVP:      "MVP",
	StageGrowth:   "Growth",
	StageScale:    "Scale",
	StageExit:     "Exit",
}

// stageSortOrder is the ranking used by SortStage. Exited ventures come
// first. This is the reverse of Stages and is kept exactly as published.
var stageSortOrder = []Stage{StageExit, StageScale, StageGrowth, StageMVP, StageIdeation}

var stageRank = func() map[Stage]int {
	m := make(map[Stage]int, len(stageSortOrder))
	for i, s := range stageSortOrder {
		m[s] = i
	}
	return m
}()

func (s Stage) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// sortRank places unknown stages after every known one.
func (s Stage) sortRank() int {
	if r, ok := stageRank[s]; ok {
		return r
	}
	return len(stageSortOrder)
}

func ParseStage(s string) (Stage, error) {
	st := Stage(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	return st, nil
}

type SortOption string

const (
	SortFeatured SortOption = "featured"
	SortNewest   SortOption = "newest"
	SortStage    SortOption = "stage"
	SortCategory SortOption = "category"
)

const DefaultSort = SortFeatured

var SortOptions = []SortOption{SortFeatured, SortNewest, SortStage, SortCategory}

var sortLabels = map[SortOption]string{
	SortFeatured: "Featured First",
	SortNewest:   "Newest First",
	SortStage:    "By Stage",
	SortCategory: "By Category",
}

func (o SortOption) Valid() bool {
	_, ok := sortLabels[o]
	return ok
}

func (o SortOption) Label() string {
	if l, ok := sortLabels[o]; ok {
		return l
	}
	return string(o)
}

// ParseSort treats the empty string as the default option.
func ParseSort(s string) (SortOption, error) {
	if s == "" {
		return DefaultSort, nil
	}
	o := SortOption(s)
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
	}
	return o, nil
}

// Facet is a key/label pair, shaped for rendering toggle controls.
type Facet struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func CategoryFacets() []Facet {
	out := make([]Facet, len(Categories))
	for i, c := range Categories {
		out[i] = Facet{Key: string(c), Label: c.Label()}
	}
	return out
}

func StageFacets() []Facet {
	out := make([]Facet, len(Stages))
	for i, s := range Stages {
		out[i] = Facet{Key: string(s), Label: s.Label()}
	}
	return out
}

func SortFacets() []Facet {
	out := make([]Facet, len(SortOptions))
	for i, o := range SortOptions {
		out[i] = Facet{Key: string(o), Label: o.Label()}
	}
	return out
}
