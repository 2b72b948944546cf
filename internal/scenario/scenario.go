// Package scenario reads hand-written matches: an ASCII map plus the units on it.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/mitchelldurbincs/WastelandAgent/internal/game/core"
	"github.com/mitchelldurbincs/WastelandAgent/internal/sim"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	defaultRounds  = 100
	defaultReserve = 40
)

var (
	ErrInvalidMap      = errors.New("invalid scenario map")
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Scenario is the YAML document describing one match
type Scenario struct {
	Name     string     `yaml:"name"`
	Players  int        `yaml:"players"`
	Me       int        `yaml:"me"`
	Seed     int64      `yaml:"seed"`
	Rounds   int        `yaml:"rounds"`
	MaxFood  int        `yaml:"max_food"`
	MaxWater int        `yaml:"max_water"`
	Map      []string   `yaml:"map"`
	Units    []UnitSpec `yaml:"units"`
}

// UnitSpec places one unit. Zero food or water starts the unit full.
type UnitSpec struct {
	ID     int    `yaml:"id"`
	Player int    `yaml:"player"`
	Kind   string `yaml:"kind"`
	Row    int    `yaml:"row"`
	Col    int    `yaml:"col"`
	Food   int    `yaml:"food"`
	Water  int    `yaml:"water"`
}

// Load reads and validates a scenario file
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario, rejecting unknown keys, and fills in defaults
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	if s.Rounds == 0 {
		s.Rounds = defaultRounds
	}
	if s.MaxFood == 0 {
		s.MaxFood = defaultReserve
	}
	if s.MaxWater == 0 {
		s.MaxWater = defaultReserve
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Players < 1 {
		return fmt.Errorf("%w: players must be positive", ErrInvalidScenario)
	}
	if s.Me < 0 || s.Me >= s.Players {
		return fmt.Errorf("%w: me=%d outside 0..%d", ErrInvalidScenario, s.Me, s.Players-1)
	}
	if s.Rounds < 0 {
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidScenario)
	}
	if _, err := s.Grid(); err != nil {
		return err
	}
	for _, u := range s.Units {
		if _, err := parseKind(u.Kind); err != nil {
			return err
		}
	}
	return nil
}

// Grid parses the map rows
func (s *Scenario) Grid() (*core.Grid, error) {
	g, err := core.ParseGrid(s.Map)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}
	return g, nil
}

// NewEngine builds a simulator seeded from the scenario and places its units
func (s *Scenario) NewEngine(logger zerolog.Logger) (*sim.Engine, error) {
	grid, err := s.Grid()
	if err != nil {
		return nil, err
	}

	engine, err := sim.NewEngine(grid, sim.Options{
		Players:  s.Players,
		Me:       s.Me,
		MaxFood:  s.MaxFood,
		MaxWater: s.MaxWater,
	}, rand.New(rand.NewSource(s.Seed)), logger)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	for _, spec := range s.Units {
		kind, err := parseKind(spec.Kind)
		if err != nil {
			return nil, err
		}
		u := core.Unit{
			ID:     spec.ID,
			Kind:   kind,
			Player: spec.Player,
			Pos:    core.Position{Row: spec.Row, Col: spec.Col},
			Food:   spec.Food,
			Water:  spec.Water,
		}
		if err := engine.AddUnit(u); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return engine, nil
}

func parseKind(kind string) (core.UnitKind, error) {
	switch kind {
	case "", "warrior":
		return core.Warrior, nil
	case "car":
		return core.Car, nil
	}
	return 0, fmt.Errorf("%w: unknown unit kind %q", ErrInvalidScenario, kind)
}
