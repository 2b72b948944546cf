package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/WastelandAgent/internal/agent"
	"github.com/mitchelldurbincs/WastelandAgent/internal/config"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/events"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/WastelandAgent/internal/game/mapgen"
	"github.com/mitchelldurbincs/WastelandAgent/internal/scenario"
	"github.com/mitchelldurbincs/WastelandAgent/internal/sim"
)

const (
	warriorsPerPlayer = 2
	carsPerPlayer     = 1
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment config to merge (config.<env>.yaml)")
	scenarioPath := flag.String("scenario", "", "Scenario file (empty to use config default or a generated map)")
	rounds := flag.Int("rounds", -1, "Rounds to play (-1 to use config or scenario default)")
	seed := flag.Int64("seed", 0, "Map and engine seed (0 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	showBoard := flag.Bool("board", false, "Print the board after every round")
	watch := flag.Bool("watch", false, "Reload agent settings when the config file changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *scenarioPath == "" {
		*scenarioPath = cfg.Simulation.Scenario
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}
	if !*showBoard {
		*showBoard = cfg.Development.ShowBoard
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	engine, maxRounds, err := newEngine(cfg, *scenarioPath, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up the match")
	}
	if *rounds == -1 {
		*rounds = maxRounds
	}

	bus := events.NewEventBus(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("event-logger", log.Logger, zerolog.DebugLevel))
	a := agent.New(engine, agent.SettingsFromConfig(cfg), bus, log.Logger)

	reloads := make(chan agent.Settings, 1)
	if *watch {
		config.WatchConfig(func(c *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			// Keep only the latest settings
			select {
			case <-reloads:
			default:
			}
			reloads <- agent.SettingsFromConfig(c)
		})
		log.Info().Str("path", config.ConfigFilePath()).Msg("Watching config for changes")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("game_id", a.GameID()).
		Int("rows", engine.Rows()).
		Int("cols", engine.Cols()).
		Int("players", engine.NumPlayers()).
		Int("me", engine.Me()).
		Int("rounds", *rounds).
		Msg("Starting simulation")
	if *showBoard {
		fmt.Print(engine.Board())
	}

	for round := 0; round < *rounds; round++ {
		select {
		case s := <-reloads:
			a.Reload(s)
		default:
		}

		if err := a.Play(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info().Int("round", round).Msg("Simulation interrupted")
				break
			}
			log.Fatal().Err(err).Msg("Agent failed")
		}

		for p := 0; p < engine.NumPlayers(); p++ {
			if p != engine.Me() {
				engine.Wander(p)
			}
		}
		report := engine.EndRound()

		log.Debug().
			Int("round", report.Round).
			Int("applied", report.Applied).
			Int("rejected", report.Rejected).
			Int("fights", report.Fights).
			Ints("deaths", report.Deaths).
			Msg("Round applied")
		if *showBoard {
			fmt.Print(engine.Board())
		}
	}

	for p := 0; p < engine.NumPlayers(); p++ {
		log.Info().Int("player", p).Int("alive", engine.Alive(p)).Msg("Final unit count")
	}
}

// newEngine loads the scenario at path, or generates a map from the
// simulation settings when path is empty
func newEngine(cfg *config.Config, path string, seed int64) (*sim.Engine, int, error) {
	if path != "" {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, 0, err
		}
		if seed != 0 {
			s.Seed = seed
		}
		engine, err := s.NewEngine(log.Logger)
		if err != nil {
			return nil, 0, err
		}
		log.Info().Str("scenario", s.Name).Str("path", path).Msg("Loaded scenario")
		return engine, s.Rounds, nil
	}

	sc := cfg.Simulation
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("Generating map")
	rng := rand.New(rand.NewSource(seed))

	gen := mapgen.NewGenerator(mapgen.DefaultMapConfig(sc.Width, sc.Height, sc.Players), rng)
	grid := gen.GenerateMap()

	engine, err := sim.NewEngine(grid, sim.Options{
		Players:  sc.Players,
		Me:       0,
		MaxFood:  sc.MaxFood,
		MaxWater: sc.MaxWater,
	}, rng, log.Logger)
	if err != nil {
		return nil, 0, err
	}

	perPlayer := warriorsPerPlayer + carsPerPlayer
	spawns := gen.SpawnPoints(grid, sc.Players*perPlayer)
	for i, p := range spawns {
		kind := core.Warrior
		if i%perPlayer >= warriorsPerPlayer {
			kind = core.Car
		}
		u := core.Unit{ID: i + 1, Kind: kind, Player: (i / perPlayer) % sc.Players, Pos: p}
		if err := engine.AddUnit(u); err != nil {
			return nil, 0, fmt.Errorf("spawn unit %d: %w", u.ID, err)
		}
	}
	return engine, sc.Rounds, nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Check if we're in production
	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
