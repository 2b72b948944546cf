package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToStringFixedWidth(t *testing.T) {
	tests := []struct {
		name     string
		num      int
		width    int
		expected string
	}{
		{"single digit width 2", 5, 2, " 5"},
		{"two digits width 2", 42, 2, "42"},
		{"number exceeds width", 1234, 2, "1234"},
		{"zero", 0, 2, " 0"},
		{"width of 1", 7, 1, "7"},
		{"negative number", -5, 3, " -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IntToStringFixedWidth(tt.num, tt.width)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid([]string{
		"=.~",
		"CF=",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, Road, g.Cell(Position{0, 0}).Type)
	assert.Equal(t, Desert, g.Cell(Position{0, 1}).Type)
	assert.Equal(t, Water, g.Cell(Position{0, 2}).Type)
	assert.Equal(t, City, g.Cell(Position{1, 0}).Type)
	assert.Equal(t, Station, g.Cell(Position{1, 1}).Type)
	assert.True(t, g.Cell(Position{1, 2}).IsEmpty())

	assert.Equal(t, "=.~\nCF=\n", g.String())
}

func TestParseGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged rows", []string{"==", "="}},
		{"unknown glyph", []string{"=x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.rows)
			assert.Error(t, err)
		})
	}
}

func TestGlyph_RoundTrip(t *testing.T) {
	for _, ct := range []CellType{Road, Desert, Water, City, Station} {
		parsed, ok := ParseCellType(Glyph(ct))
		require.True(t, ok)
		assert.Equal(t, ct, parsed)
	}
	_, ok := ParseCellType('?')
	assert.False(t, ok)
}

func BenchmarkIntToStringFixedWidth(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = IntToStringFixedWidth(i%100, 2)
	}
}
