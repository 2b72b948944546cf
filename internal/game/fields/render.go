package fields

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/rs/zerolog"
)

// Render draws a field as a text grid: "++" for unreachable cells, "[]" for
// source seeds, and two-column values otherwise.
func Render(f *DistanceField) string {
	var sb strings.Builder
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			switch v := f.At(core.Position{Row: r, Col: c}); {
			case v == Unreachable:
				sb.WriteString("++")
			case v == sourceSeed:
				sb.WriteString("[]")
			default:
				sb.WriteString(core.IntToStringFixedWidth(v, 2))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dump logs every field of the set at debug level
func (s *Set) Dump(logger zerolog.Logger) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	logger.Debug().Msg("-- WATER --\n" + Render(s.Water))
	logger.Debug().Msg("-- FUEL UNWEIGHTED --\n" + Render(s.FuelUnweighted))
	logger.Debug().Msg("-- FUEL --\n" + Render(s.Fuel))
	logger.Debug().Msg("-- NEAREST CITY --\n" + Render(s.NearestCity))
	for i, f := range s.CityInterior {
		logger.Debug().Msg(fmt.Sprintf("-- CITY %d --\n", i) + Render(f))
	}
}
