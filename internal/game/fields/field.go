// Package fields precomputes the distance fields the agent navigates by.
//
// Every field is a dense grid of integers holding, per cell, the cost to reach the
// nearest source under that field's own traversal rule. Fields are built once per
// game and are read-only afterwards.
package fields

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// Unreachable is stored in cells no source can reach under a field's rule
const Unreachable = 100_000_000

var (
	ErrEmptyGrid    = errors.New("grid has no cells")
	ErrUnknownField = errors.New("unknown field reference")
)

// DistanceField is a dense row-major grid of costs
type DistanceField struct {
	rows, cols int
	values     []int
}

// NewDistanceField returns a field with every cell Unreachable
func NewDistanceField(rows, cols int) *DistanceField {
	f := &DistanceField{rows: rows, cols: cols, values: make([]int, rows*cols)}
	for i := range f.values {
		f.values[i] = Unreachable
	}
	return f
}

// NewDistanceFieldFromRows copies a literal table into a field. All rows must have the same length.
func NewDistanceFieldFromRows(rows [][]int) *DistanceField {
	if len(rows) == 0 {
		return NewDistanceField(0, 0)
	}
	f := NewDistanceField(len(rows), len(rows[0]))
	for r, row := range rows {
		copy(f.values[r*f.cols:(r+1)*f.cols], row)
	}
	return f
}

func (f *DistanceField) Rows() int { return f.rows }
func (f *DistanceField) Cols() int { return f.cols }

// At returns the value at p, or Unreachable outside the field
func (f *DistanceField) At(p core.Position) int {
	if !p.IsValid(f.rows, f.cols) {
		return Unreachable
	}
	return f.values[p.ToIndex(f.cols)]
}

// Reachable reports whether p holds a settled value
func (f *DistanceField) Reachable(p core.Position) bool {
	return f.At(p) != Unreachable
}

// Put overwrites the value at p. Out of bounds positions are ignored.
func (f *DistanceField) Put(p core.Position, v int) {
	if p.IsValid(f.rows, f.cols) {
		f.values[p.ToIndex(f.cols)] = v
	}
}

// CityGroup is a connected cluster of City cells
type CityGroup struct {
	Index   int
	Members []core.Position
}

// Kind names one of the fixed families of fields a goal can point at
type Kind int

const (
	KindWater Kind = iota
	KindFuel
	KindFuelUnweighted
	KindCity
)

// Ref is a goal's handle on a field. It is resolved through Set.Lookup so goals
// never hold on to field memory directly.
type Ref struct {
	Kind Kind
	City int // only meaningful for KindCity
}

func WaterRef() Ref        { return Ref{Kind: KindWater} }
func FuelRef() Ref         { return Ref{Kind: KindFuel} }
func CityRef(city int) Ref { return Ref{Kind: KindCity, City: city} }

func (r Ref) String() string {
	switch r.Kind {
	case KindWater:
		return "water"
	case KindFuel:
		return "fuel"
	case KindFuelUnweighted:
		return "fuel_unweighted"
	case KindCity:
		return fmt.Sprintf("city[%d]", r.City)
	default:
		return fmt.Sprintf("kind(%d)", int(r.Kind))
	}
}

// Set is the lookup table of every field built for a game
type Set struct {
	Water          *DistanceField
	Fuel           *DistanceField
	FuelUnweighted *DistanceField
	NearestCity    *DistanceField // city index per cell, not a distance
	CityInterior   []*DistanceField
	Cities         []CityGroup
}

// NumCities returns how many city groups the flood fill discovered
func (s *Set) NumCities() int { return len(s.Cities) }

// Lookup resolves a goal reference to its field
func (s *Set) Lookup(ref Ref) (*DistanceField, error) {
	switch ref.Kind {
	case KindWater:
		return s.Water, nil
	case KindFuel:
		return s.Fuel, nil
	case KindFuelUnweighted:
		return s.FuelUnweighted, nil
	case KindCity:
		if ref.City < 0 || ref.City >= len(s.CityInterior) {
			return nil, fmt.Errorf("%s: %w", ref, ErrUnknownField)
		}
		return s.CityInterior[ref.City], nil
	}
	return nil, fmt.Errorf("%s: %w", ref, ErrUnknownField)
}

// NearestCityAt returns the city index labelled at p, if any city reaches it
func (s *Set) NearestCityAt(p core.Position) (int, bool) {
	c := s.NearestCity.At(p)
	if c == Unreachable {
		return 0, false
	}
	return c, true
}
