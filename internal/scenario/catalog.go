// Package scenario maps listening scenarios to reference emotion vectors.
package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/justestif/go-scenario-recommender/internal/emotion"
)

// Catalog validation errors.
var (
	ErrEmptyKey      = errors.New("scenario key is empty")
	ErrDuplicateKey  = errors.New("duplicate scenario key")
	ErrNegativeValue = errors.New("scenario vector has a negative component")
	ErrZeroVector    = errors.New("scenario vector is all zero")
)

// Scenario is a named listening context with its target emotion profile.
type Scenario struct {
	Key    string
	Name   string // Display name, e.g. "Workout & Exercise"
	Vector emotion.Vector
}

// Label returns the first word of the display name (falls back to the key).
func (s Scenario) Label() string {
	if fields := strings.Fields(s.Name); len(fields) > 0 {
		return fields[0]
	}
	return s.Key
}

// Catalog is an immutable scenario lookup table, safe for concurrent reads.
type Catalog struct {
	byKey map[string]Scenario
	order []string
}

// Built-in scenarios in display order.
var defaultScenarios = []Scenario{
	{Key: "late_night_relax", Name: "Late Night Relax", Vector: emotion.Vector{0.05, 0.05, 0.40, 0.50}},
	{Key: "workout", Name: "Workout & Exercise", Vector: emotion.Vector{0.70, 0.30, 0.00, 0.00}},
	{Key: "road_trip", Name: "Road Trip", Vector: emotion.Vector{0.55, 0.10, 0.05, 0.30}},
	{Key: "study_focus", Name: "Study Focus", Vector: emotion.Vector{0.05, 0.10, 0.05, 0.80}},
	{Key: "heartbreak", Name: "Heartbreak", Vector: emotion.Vector{0.02, 0.25, 0.70, 0.03}},
	{Key: "party", Name: "Party & Celebration", Vector: emotion.Vector{0.90, 0.07, 0.01, 0.01}},
	{Key: "commute", Name: "Daily Commute", Vector: emotion.Vector{0.30, 0.00, 0.00, 0.70}},
}

var defaultCatalog = mustCatalog(defaultScenarios)

// DefaultCatalog returns the built-in catalog of seven scenarios.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog from the given scenarios, preserving their order.
// Scenarios without a display name use their key.
func NewCatalog(scenarios []Scenario) (*Catalog, error) {
	c := &Catalog{
		byKey: make(map[string]Scenario, len(scenarios)),
		order: make([]string, 0, len(scenarios)),
	}

	for _, s := range scenarios {
		s.Key = strings.TrimSpace(s.Key)
		if s.Key == "" {
			return nil, ErrEmptyKey
		}
		if _, exists := c.byKey[s.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, s.Key)
		}
		for _, x := range s.Vector {
			if x < 0 {
				return nil, fmt.Errorf("%w: %s", ErrNegativeValue, s.Key)
			}
		}
		if s.Vector.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrZeroVector, s.Key)
		}
		if s.Name == "" {
			s.Name = s.Key
		}

		c.byKey[s.Key] = s
		c.order = append(c.order, s.Key)
	}

	return c, nil
}

func mustCatalog(scenarios []Scenario) *Catalog {
	c, err := NewCatalog(scenarios)
	if err != nil {
		panic(err)
	}
	return c
}

// VectorFor returns the reference vector for key, or the uniform vector
// when the key is unknown.
func (c *Catalog) VectorFor(key string) emotion.Vector {
	if s, ok := c.byKey[key]; ok {
		return s.Vector
	}
	return emotion.Uniform()
}

// Lookup returns the scenario for key.
func (c *Catalog) Lookup(key string) (Scenario, bool) {
	s, ok := c.byKey[key]
	return s, ok
}

// Resolve returns the scenario for key, or a placeholder scenario carrying
// the uniform vector when the key is unknown.
func (c *Catalog) Resolve(key string) Scenario {
	if s, ok := c.byKey[key]; ok {
		return s
	}
	return Scenario{Key: key, Name: key, Vector: emotion.Uniform()}
}

// Scenarios returns all scenarios in catalog order.
func (c *Catalog) Scenarios() []Scenario {
	out := make([]Scenario, len(c.order))
	for i, key := range c.order {
		out[i] = c.byKey[key]
	}
	return out
}

// Keys returns all scenario keys in catalog order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Nearest returns the scenario most similar to v. Ties resolve to the
// earlier scenario in catalog order. The bool is false for an empty catalog.
func (c *Catalog) Nearest(v emotion.Vector) (Scenario, bool) {
	var best Scenario
	bestScore := -1.0
	found := false
	for _, key := range c.order {
		s := c.byKey[key]
		score := emotion.Similarity(v, s.Vector)
		if score > bestScore {
			best, bestScore, found = s, score, true
		}
	}
	return best, found
}
