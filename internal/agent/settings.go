package agent

import (
	"github.com/mitchelldurbincs/WastelandAgent/internal/config"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/combat"
)

// Settings are the tunables of the decision logic
type Settings struct {
	WaterMargin         int
	FoodMargin          int
	CityFightRatio      int
	StarvationThreshold int

	// WarriorCadence of 0 moves warriors once per player cycle
	WarriorCadence int
	// WarriorOffset of -1 uses our own player index
	WarriorOffset int

	SweepInterval  int
	SweepAgeCycles int

	DumpFields bool
}

func DefaultSettings() Settings {
	return Settings{
		WaterMargin:         8,
		FoodMargin:          7,
		CityFightRatio:      combat.DefaultCityFightRatio,
		StarvationThreshold: combat.DefaultStarvationThreshold,
		WarriorCadence:      0,
		WarriorOffset:       -1,
		SweepInterval:       50,
		SweepAgeCycles:      4,
	}
}

// SettingsFromConfig copies the agent section of the application config
func SettingsFromConfig(c *config.Config) Settings {
	a := c.Agent
	return Settings{
		WaterMargin:         a.WaterMargin,
		FoodMargin:          a.FoodMargin,
		CityFightRatio:      a.CityFightRatio,
		StarvationThreshold: a.StarvationThreshold,
		WarriorCadence:      a.WarriorCadence,
		WarriorOffset:       a.WarriorOffset,
		SweepInterval:       a.Registry.SweepInterval,
		SweepAgeCycles:      a.Registry.SweepAgeCycles,
		DumpFields:          c.Development.DumpFields,
	}
}

func (s Settings) predictor() combat.Predictor {
	return combat.Predictor{
		CityFightRatio:      s.CityFightRatio,
		StarvationThreshold: s.StarvationThreshold,
	}
}
