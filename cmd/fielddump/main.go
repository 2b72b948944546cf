package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/WastelandAgent/internal/config"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/fields"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/mapgen"
	"github.com/mitchelldurbincs/WastelandAgent/internal/scenario"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	scenarioPath := flag.String("scenario", "", "Scenario file (empty to generate a map)")
	seed := flag.Int64("seed", 0, "Map seed for generated maps (0 to use config default)")
	only := flag.String("field", "", "Comma separated fields to print: water, fuel, fuel_unweighted, nearest_city, city (empty prints all)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	setupLogging(cfg.Logging.Level)

	if *scenarioPath == "" {
		*scenarioPath = cfg.Simulation.Scenario
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}

	grid, players, err := loadGrid(cfg, *scenarioPath, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load map")
	}

	set, err := fields.NewBuilder(grid, players, log.Logger).Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build fields")
	}

	want := selected(*only)
	fmt.Printf("-- MAP (%dx%d, %d players, %d cities) --\n%s\n", grid.Rows(), grid.Cols(), players, set.NumCities(), grid)
	printField(want, "water", "WATER", set.Water)
	printField(want, "fuel_unweighted", "FUEL UNWEIGHTED", set.FuelUnweighted)
	printField(want, "fuel", "FUEL", set.Fuel)
	printField(want, "nearest_city", "NEAREST CITY", set.NearestCity)
	for i, f := range set.CityInterior {
		printField(want, "city", fmt.Sprintf("CITY %d (%d cells)", i, len(set.Cities[i].Members)), f)
	}
}

func loadGrid(cfg *config.Config, path string, seed int64) (*core.Grid, int, error) {
	if path != "" {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, 0, err
		}
		grid, err := s.Grid()
		return grid, s.Players, err
	}

	sc := cfg.Simulation
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("Generating map")
	gen := mapgen.NewGenerator(mapgen.DefaultMapConfig(sc.Width, sc.Height, sc.Players), rand.New(rand.NewSource(seed)))
	return gen.GenerateMap(), sc.Players, nil
}

func selected(list string) map[string]bool {
	if list == "" {
		return nil
	}
	want := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		want[strings.TrimSpace(name)] = true
	}
	return want
}

func printField(want map[string]bool, name, title string, f *fields.DistanceField) {
	if want != nil && !want[name] {
		return
	}
	fmt.Printf("-- %s --\n%s\n", title, fields.Render(f))
}

func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
