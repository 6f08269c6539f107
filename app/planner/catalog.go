package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

// Catalog is an immutable snapshot of the unit catalog indexed for
// validation. Build a new snapshot and swap the reference on refresh rather
// than mutating one in place; a snapshot is safe for concurrent reads.
type Catalog struct {
	units       map[string]*models.Unit
	equivalents map[string]map[string]bool
	expressions map[string]*Expression
}

// ErrUnitNotFound is returned by Describe for codes absent from the catalog.
type ErrUnitNotFound struct {
	Code string
}

func (e *ErrUnitNotFound) Error() string {
	return fmt.Sprintf("unit %s not found in catalog", e.Code)
}

// NewCatalog indexes the supplied unit records. Equivalence declarations are
// closed symmetrically: if A lists B, then B also substitutes for A.
// Prerequisite expressions are parsed once per distinct text and cached.
func NewCatalog(units []*models.Unit) *Catalog {
	c := &Catalog{
		units:       make(map[string]*models.Unit, len(units)),
		equivalents: make(map[string]map[string]bool),
		expressions: make(map[string]*Expression),
	}

	for _, unit := range units {
		code := strings.ToUpper(strings.TrimSpace(unit.Code))
		if code == "" {
			continue
		}
		c.units[code] = unit

		for _, equivalent := range unit.Equivalences {
			equivalent = strings.ToUpper(strings.TrimSpace(equivalent))
			if equivalent == "" || equivalent == code {
				continue
			}
			c.link(code, equivalent)
			c.link(equivalent, code)
		}

		if _, ok := c.expressions[unit.Prerequisites]; !ok {
			c.expressions[unit.Prerequisites] = Parse(unit.Prerequisites)
		}
	}

	return c
}

func (c *Catalog) link(a, b string) {
	if c.equivalents[a] == nil {
		c.equivalents[a] = make(map[string]bool)
	}
	c.equivalents[a][b] = true
}

// Lookup returns the unit record for a code, if present.
func (c *Catalog) Lookup(code string) (*models.Unit, bool) {
	unit, ok := c.units[strings.ToUpper(strings.TrimSpace(code))]
	return unit, ok
}

// Describe is the read-only lookup exposed to callers that need display
// metadata independent of validation.
func (c *Catalog) Describe(code string) (*models.Unit, error) {
	unit, ok := c.Lookup(code)
	if !ok {
		return nil, &ErrUnitNotFound{Code: strings.ToUpper(strings.TrimSpace(code))}
	}
	return unit, nil
}

// Len reports the number of indexed units.
func (c *Catalog) Len() int {
	return len(c.units)
}

// Units returns the indexed records sorted by code.
func (c *Catalog) Units() []*models.Unit {
	out := make([]*models.Unit, 0, len(c.units))
	for _, unit := range c.units {
		out = append(out, unit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Equivalent reports whether two codes are declared interchangeable, in
// either direction.
func (c *Catalog) Equivalent(a, b string) bool {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if a == b {
		return true
	}
	return c.equivalents[a][b] || c.equivalents[b][a]
}

// Prerequisite returns the cached expression for a unit's prerequisite text.
// Unknown codes evaluate as having no prerequisites.
func (c *Catalog) Prerequisite(code string) *Expression {
	unit, ok := c.Lookup(code)
	if !ok {
		return Parse("")
	}
	expr, ok := c.expressions[unit.Prerequisites]
	if !ok {
		// every indexed unit's text is parsed at construction; this
		// branch only covers a zero-value record
		expr = Parse(unit.Prerequisites)
	}
	return expr
}

// CreditPoints returns the points awarded for a completed unit, defaulting
// to the standard weight for codes not in the catalog.
func (c *Catalog) CreditPoints(code string) int {
	if unit, ok := c.Lookup(code); ok {
		return unit.Points()
	}
	return models.DefaultCreditPoints
}

// Level returns the academic level of a code, preferring the catalog record
// and falling back to the code's fifth character.
func (c *Catalog) Level(code string) int {
	if unit, ok := c.Lookup(code); ok && unit.Level >= 1 {
		return unit.Level
	}
	return models.LevelFromCode(strings.ToUpper(strings.TrimSpace(code)))
}

// IsBridging reports whether a code is in the configured bridging exclusion
// set.
func (c *Catalog) IsBridging(code string) bool {
	unit, ok := c.Lookup(code)
	return ok && unit.IsBridging
}

// CompletedSet expands a list of completed codes with every code each one
// substitutes for, producing the set prerequisite atoms are matched against.
func (c *Catalog) CompletedSet(completed []string) map[string]bool {
	set := make(map[string]bool, len(completed))
	for _, code := range completed {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		set[code] = true
		for equivalent := range c.equivalents[code] {
			set[equivalent] = true
		}
	}
	return set
}
