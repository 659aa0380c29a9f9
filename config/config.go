// Package config loads process settings from the environment and experiment
// plans from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"ringrush/experiments"
	"ringrush/experiments/metrics"
)

const envPrefix = "RINGRUSH_"

// Defaults
const (
	Addr       = ":8080"
	LogLevel   = "info"
	Goroutines = 8
	Episodes   = 2000
	Seed       = 1
	OutputDir  = "experiments"
)

type Config struct {
	Addr       string
	LogLevel   string
	Goroutines int
	Episodes   int
	Duration   time.Duration // Per move, 0 to search by episodes only
	Cutoff     int           // 0 plays rollouts out in full
	Seed       uint64
	OutputDir  string
}

func Default() Config {
	return Config{
		Addr:       Addr,
		LogLevel:   LogLevel,
		Goroutines: Goroutines,
		Episodes:   Episodes,
		Seed:       Seed,
		OutputDir:  OutputDir,
	}
}

// Load reads an optional .env file, then the RINGRUSH_* variables on top of
// the defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	c := Default()
	var err error
	if v, ok := lookup("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("GOROUTINES"); ok {
		if c.Goroutines, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("failed to parse %sGOROUTINES: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("EPISODES"); ok {
		if c.Episodes, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("failed to parse %sEPISODES: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("DURATION"); ok {
		if c.Duration, err = parseDuration(v); err != nil {
			return Config{}, fmt.Errorf("failed to parse %sDURATION: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("CUTOFF"); ok {
		if c.Cutoff, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("failed to parse %sCUTOFF: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("SEED"); ok {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("failed to parse %sSEED: %w", envPrefix, err)
		}
	}
	if v, ok := lookup("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}

	log.Debug().Msgf("loaded config %+v", c)
	return c, c.Validate()
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	return v, ok && v != ""
}

// parseDuration accepts Go durations and bare milliseconds.
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config validation: addr is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config validation: log level %q: %w", c.LogLevel, err)
	}
	if c.Goroutines <= 0 {
		return fmt.Errorf("config validation: goroutines must be positive, got %d", c.Goroutines)
	}
	if c.Episodes < 0 || c.Duration < 0 || c.Cutoff < 0 {
		return errors.New("config validation: episodes, duration and cutoff cannot be negative")
	}
	if c.Episodes == 0 && c.Duration == 0 {
		return errors.New("config validation: either episodes or duration must be set")
	}
	if c.OutputDir == "" {
		return errors.New("config validation: output dir is required")
	}
	return nil
}

// Level is the zerolog level named by LogLevel.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Agent describes an agent of the given kind with the configured search budget.
func (c Config) Agent(id int, kind string) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Kind:       kind,
		Goroutines: c.Goroutines,
		Duration:   c.Duration,
		Episodes:   c.Episodes,
		Cutoff:     c.Cutoff,
		Seed:       c.Seed + uint64(id),
	}
}

// LoadExperiment reads a YAML experiment plan. Games default to
// experiments.NumGames and the variant to core.
func LoadExperiment(path string) (experiments.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return experiments.Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}

	var plan experiments.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return experiments.Plan{}, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	if plan.Games == 0 {
		plan.Games = experiments.NumGames
	}
	if plan.Variant == "" {
		plan.Variant = experiments.VariantCore
	}
	return plan, plan.Validate()
}
