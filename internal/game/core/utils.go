package core

import (
	"fmt"
	"strings"
)

// IntToStringFixedWidth converts an integer to a string of a specified width,
// left-padding with spaces. Longer numbers are not truncated.
func IntToStringFixedWidth(num int, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// Glyphs used by ParseGrid and Grid.String
const (
	GlyphRoad    = '='
	GlyphDesert  = '.'
	GlyphWater   = '~'
	GlyphCity    = 'C'
	GlyphStation = 'F'
)

// Glyph returns the map character of a terrain kind
func Glyph(t CellType) byte {
	switch t {
	case Road:
		return GlyphRoad
	case Water:
		return GlyphWater
	case City:
		return GlyphCity
	case Station:
		return GlyphStation
	default:
		return GlyphDesert
	}
}

// ParseCellType maps a map character back to its terrain kind
func ParseCellType(ch byte) (CellType, bool) {
	switch ch {
	case GlyphRoad:
		return Road, true
	case GlyphDesert:
		return Desert, true
	case GlyphWater:
		return Water, true
	case GlyphCity:
		return City, true
	case GlyphStation:
		return Station, true
	}
	return 0, false
}

// ParseGrid builds a grid from equally long rows of map characters
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("parse grid: %w", ErrOutOfBounds)
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != g.C {
			return nil, fmt.Errorf("parse grid: row %d has %d columns, want %d", r, len(line), g.C)
		}
		for c := 0; c < len(line); c++ {
			t, ok := ParseCellType(line[c])
			if !ok {
				return nil, fmt.Errorf("parse grid: unknown glyph %q at (%d,%d)", line[c], r, c)
			}
			g.Cells[g.Idx(Position{r, c})].Type = t
		}
	}
	return g, nil
}

// String renders the terrain using the ParseGrid glyphs
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.R; r++ {
		for c := 0; c < g.C; c++ {
			sb.WriteByte(Glyph(g.Cells[g.Idx(Position{r, c})].Type))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
