// Package portfolio holds the venture catalog, the facet vocabulary and
// the filter/sort pipeline that turns a query state into a display list.
package portfolio

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidVenture = errors.New("invalid venture")

// Metrics are display strings only. Nothing computes on them.
type Metrics struct {
	Revenue string `yaml:"revenue,omitempty" json:"revenue,omitempty"`
	Users   string `yaml:"users,omitempty" json:"users,omitempty"`
	Growth  string `yaml:"growth,omitempty" json:"growth,omitempty"`
}

func (m *Metrics) Empty() bool {
	return m == nil || (m.Revenue == "" && m.Users == "" && m.Growth == "")
}

// Venture is one portfolio company.
type Venture struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Tagline      string   `yaml:"tagline" json:"tagline"`
	Description  string   `yaml:"description" json:"description"`
	Category     Category `yaml:"category" json:"category"`
	Stage        Stage    `yaml:"stage" json:"stage"`
	Founded      string   `yaml:"founded" json:"founded"`
	Featured     bool     `yaml:"featured" json:"featured"`
	Technologies []string `yaml:"technologies,omitempty" json:"technologies,omitempty"`
	Metrics      *Metrics `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

// FoundedYear returns the numeric founding year, or 0 when founded is
// not a number.
func (v Venture) FoundedYear() int {
	y, err := strconv.Atoi(v.Founded)
	if err != nil {
		return 0
	}
	return y
}

func (v Venture) validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidVenture)
	}
	if v.Name == "" {
		return fmt.Errorf("%w %s: missing name", ErrInvalidVenture, v.ID)
	}
	if !v.Category.Valid() {
		return fmt.Errorf("%w %s: %w: %q", ErrInvalidVenture, v.ID, ErrUnknownCategory, v.Category)
	}
	if !v.Stage.Valid() {
		return fmt.Errorf("%w %s: %w: %q", ErrInvalidVenture, v.ID, ErrUnknownStage, v.Stage)
	}
	if !isYear(v.Founded) {
		return fmt.Errorf("%w %s: founded must be a 4-digit year, got %q", ErrInvalidVenture, v.ID, v.Founded)
	}
	return nil
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Catalog is the fixed, ordered set of ventures for a session. It is
// never mutated after NewCatalog returns.
type Catalog struct {
	ventures []Venture
	byID     map[string]int
}

// NewCatalog validates ventures and keeps their order. The slice is
// copied, so later changes by the caller are not observed.
func NewCatalog(ventures []Venture) (*Catalog, error) {
	c := &Catalog{
		ventures: make([]Venture, len(ventures)),
		byID:     make(map[string]int, len(ventures)),
	}
	for i, v := range ventures {
		if err := v.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidVenture, v.ID)
		}
		c.byID[v.ID] = i
		c.ventures[i] = v
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.ventures)
}

// All returns the ventures in catalog order.
func (c *Catalog) All() []Venture {
	out := make([]Venture, len(c.ventures))
	copy(out, c.ventures)
	return out
}

func (c *Catalog) Get(id string) (Venture, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Venture{}, false
	}
	return c.ventures[i], true
}

// Featured returns the featured ventures in catalog order.
func (c *Catalog) Featured() []Venture {
	var out []Venture
	for _, v := range c.ventures {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out
}
