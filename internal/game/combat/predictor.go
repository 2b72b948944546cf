// Package combat predicts the outcome of a single encounter between two units.
package combat

import "github.com/mitchelldurbincs/WastelandAgent/internal/game/core"

const (
	DefaultCityFightRatio      = 75
	DefaultStarvationThreshold = 6
)

// Predictor is a deterministic stand-in for the engine's combat resolution.
// It never draws random numbers: the city rule is a feasibility cutoff, not a roll.
type Predictor struct {
	// CityFightRatio is the minimum attacker share of the combined water, in percent,
	// needed to win inside a city.
	CityFightRatio int
	// StarvationThreshold is the food or water level at or below which a victim
	// on open terrain always loses.
	StarvationThreshold int
}

// NewPredictor returns a predictor with the default thresholds
func NewPredictor() Predictor {
	return Predictor{
		CityFightRatio:      DefaultCityFightRatio,
		StarvationThreshold: DefaultStarvationThreshold,
	}
}

// Wins reports whether attacker beats victim when the fight happens on a cell of
// the given terrain.
func (p Predictor) Wins(attacker, victim core.Unit, terrain core.CellType) bool {
	if terrain == core.City {
		return p.winsInCity(attacker, victim)
	}
	return p.winsInOpen(attacker, victim)
}

func (p Predictor) winsInCity(attacker, victim core.Unit) bool {
	total := attacker.Water + victim.Water
	if total <= 0 {
		return false
	}
	return attacker.Water*100/total >= p.CityFightRatio
}

func (p Predictor) winsInOpen(attacker, victim core.Unit) bool {
	if victim.IsCar() {
		return false
	}
	if attacker.IsCar() {
		return true
	}
	if victim.Food <= p.StarvationThreshold || victim.Water <= p.StarvationThreshold {
		return true
	}
	if victim.Food > attacker.Food && victim.Water > attacker.Water {
		return false
	}

	// The victim's scarcer resource is the yardstick for both attacker stores
	lowest := victim.Water
	if victim.Food < victim.Water {
		lowest = victim.Food
	}
	return attacker.Food > lowest && attacker.Water > lowest
}
