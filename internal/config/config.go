package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Agent       AgentConfig       `mapstructure:"agent"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// AgentConfig holds the decision tunables
type AgentConfig struct {
	WaterMargin         int            `mapstructure:"water_margin"`
	FoodMargin          int            `mapstructure:"food_margin"`
	CityFightRatio      int            `mapstructure:"city_fight_ratio"`
	StarvationThreshold int            `mapstructure:"starvation_threshold"`
	WarriorCadence      int            `mapstructure:"warrior_cadence"` // 0 means the player count
	WarriorOffset       int            `mapstructure:"warrior_offset"`  // -1 means our own player index
	Registry            RegistryConfig `mapstructure:"registry"`
}

// RegistryConfig controls eviction of stale unit records
type RegistryConfig struct {
	SweepInterval  int `mapstructure:"sweep_interval"` // 0 disables sweeping
	SweepAgeCycles int `mapstructure:"sweep_age_cycles"`
}

// SimulationConfig describes the local match run by cmd/simulate
type SimulationConfig struct {
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	Players  int    `mapstructure:"players"`
	Rounds   int    `mapstructure:"rounds"`
	Seed     int64  `mapstructure:"seed"` // 0 seeds from the clock
	MaxFood  int    `mapstructure:"max_food"`
	MaxWater int    `mapstructure:"max_water"`
	Scenario string `mapstructure:"scenario"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	DumpFields bool `mapstructure:"dump_fields"`
	ShowBoard  bool `mapstructure:"show_board"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Agent defaults
	v.SetDefault("agent.water_margin", 8)
	v.SetDefault("agent.food_margin", 7)
	v.SetDefault("agent.city_fight_ratio", 75)
	v.SetDefault("agent.starvation_threshold", 6)
	v.SetDefault("agent.warrior_cadence", 0)
	v.SetDefault("agent.warrior_offset", -1)
	v.SetDefault("agent.registry.sweep_interval", 50)
	v.SetDefault("agent.registry.sweep_age_cycles", 4)

	// Simulation defaults
	v.SetDefault("simulation.width", 30)
	v.SetDefault("simulation.height", 20)
	v.SetDefault("simulation.players", 4)
	v.SetDefault("simulation.rounds", 200)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_food", 40)
	v.SetDefault("simulation.max_water", 40)
	v.SetDefault("simulation.scenario", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.dump_fields", false)
	v.SetDefault("development.show_board", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/wasteland-agent")
	}

	v.SetEnvPrefix("WA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isMissing(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	loaded, err := decode(v)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// isMissing reports whether err only says the config file is absent. The
// search path reports ConfigFileNotFoundError, an explicit path a PathError.
func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func decode(src *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := src.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded settings
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil && !isMissing(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	merged, err := decode(v)
	if err != nil {
		return err
	}
	cfg = merged
	return nil
}

// Set overrides one key at runtime. The previous settings stay in place if
// the override does not validate.
func Set(key string, value interface{}) error {
	scratch := viper.New()
	if err := scratch.MergeConfigMap(v.AllSettings()); err != nil {
		return fmt.Errorf("unable to copy config: %w", err)
	}
	scratch.Set(key, value)
	if _, err := decode(scratch); err != nil {
		return err
	}

	v.Set(key, value)
	updated, err := decode(v)
	if err != nil {
		return err
	}
	cfg = updated
	return nil
}

func GetString(key string) string { return v.GetString(key) }
func GetInt(key string) int       { return v.GetInt(key) }
func GetBool(key string) bool     { return v.GetBool(key) }

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// new settings, or the error that kept the old ones in place. It runs on the
// watcher goroutine.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		updated, err := decode(v)
		if err == nil {
			cfg = updated
		}
		if onChange != nil {
			onChange(updated, err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	a := c.Agent
	if a.WaterMargin < 0 || a.FoodMargin < 0 {
		return fmt.Errorf("agent.water_margin and agent.food_margin must be non-negative")
	}
	if a.CityFightRatio < 1 || a.CityFightRatio > 100 {
		return fmt.Errorf("agent.city_fight_ratio must be between 1 and 100")
	}
	if a.StarvationThreshold < 0 {
		return fmt.Errorf("agent.starvation_threshold must be non-negative")
	}
	if a.WarriorCadence < 0 {
		return fmt.Errorf("agent.warrior_cadence must be non-negative")
	}
	if a.WarriorOffset < -1 {
		return fmt.Errorf("agent.warrior_offset must be -1 or a round offset")
	}
	if a.WarriorCadence > 0 && a.WarriorOffset >= a.WarriorCadence {
		return fmt.Errorf("agent.warrior_offset must be below agent.warrior_cadence")
	}
	if a.Registry.SweepInterval < 0 {
		return fmt.Errorf("agent.registry.sweep_interval must be non-negative")
	}
	if a.Registry.SweepAgeCycles < 1 {
		return fmt.Errorf("agent.registry.sweep_age_cycles must be at least 1")
	}

	s := c.Simulation
	if s.Width < 3 || s.Height < 3 {
		return fmt.Errorf("simulation map must be at least 3x3")
	}
	if s.Players < 1 {
		return fmt.Errorf("simulation.players must be positive")
	}
	if s.Rounds < 1 {
		return fmt.Errorf("simulation.rounds must be positive")
	}
	if s.MaxFood <= 0 || s.MaxWater <= 0 {
		return fmt.Errorf("simulation.max_food and simulation.max_water must be positive")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
