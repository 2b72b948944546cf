package sim

import (
	"strings"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
)

// ANSI color codes for Board rendering
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

var playerColors = []string{colorRed, colorBlue, colorGreen, colorYellow, colorPurple, colorCyan}

var terrainColors = map[core.CellType]string{
	core.Road:    colorGray,
	core.Desert:  colorYellow,
	core.Water:   colorBlue,
	core.City:    colorPurple,
	core.Station: colorCyan,
}

// Board renders the map with column and row headers. Units are drawn as the
// player letter, upper case for warriors and lower case for cars.
func (e *Engine) Board() string {
	rows, cols := e.grid.Rows(), e.grid.Cols()

	var sb strings.Builder
	sb.Grow((cols*12+8)*(rows+3) + 100)

	sb.WriteString("   ")
	for c := 0; c < cols; c++ {
		sb.WriteString(core.IntToStringFixedWidth(c%100, 2))
	}
	sb.WriteString("\n")

	for r := 0; r < rows; r++ {
		sb.WriteString(core.IntToStringFixedWidth(r, 2))
		sb.WriteString(" ")
		for c := 0; c < cols; c++ {
			e.writeCell(&sb, e.grid.Cell(core.Position{Row: r, Col: c}))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n= road  . desert  ~ water  C city  F station  A-H warriors  a-h cars\n")
	return sb.String()
}

func (e *Engine) writeCell(sb *strings.Builder, cell core.Cell) {
	sb.WriteString(" ")
	if !cell.IsEmpty() {
		u := e.units[cell.Occupant]
		letter := byte('A' + u.Player%8)
		if u.IsCar() {
			letter += 'a' - 'A'
		}
		sb.WriteString(playerColors[u.Player%len(playerColors)])
		sb.WriteByte(letter)
		sb.WriteString(colorReset)
		return
	}

	sb.WriteString(terrainColors[cell.Type])
	sb.WriteByte(core.Glyph(cell.Type))
	sb.WriteString(colorReset)
}
