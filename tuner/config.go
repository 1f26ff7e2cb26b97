package tuner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration adds YAML support for strings like "250ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("failed to parse duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config controls a tuning run. Zero values fall back to DefaultConfig, so
// a config file only needs the fields it wants to change.
type Config struct {
	PopulationSize int      `yaml:"population_size"`
	MutationRate   float64  `yaml:"mutation_rate"`
	GamesPerEval   int      `yaml:"games_per_eval"`
	Margin         float64  `yaml:"margin"`
	PlateauRounds  int      `yaml:"plateau_rounds"`
	MaxRounds      int      `yaml:"max_rounds"`
	MaxPlies       int      `yaml:"max_plies"`
	SearchDepth    int      `yaml:"search_depth"`
	MoveBudget     Duration `yaml:"move_budget"`
	Concurrency    int      `yaml:"concurrency"`
	Seed           uint64   `yaml:"seed"`
	Openings       []string `yaml:"openings"`
}

func DefaultConfig() Config {
	return Config{
		PopulationSize: 6,
		MutationRate:   0.2,
		GamesPerEval:   8,
		Margin:         0.05,
		PlateauRounds:  3,
		MaxRounds:      20,
		MaxPlies:       60,
		SearchDepth:    2,
		Concurrency:    4,
		Seed:           1,
		Openings:       OpeningBook(),
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("population_size must be at least 2, got %d", c.PopulationSize)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("mutation_rate must be within [0,1], got %g", c.MutationRate)
	case c.GamesPerEval < 2:
		return fmt.Errorf("games_per_eval must be at least 2, got %d", c.GamesPerEval)
	case c.Margin < 0 || c.Margin >= 0.5:
		return fmt.Errorf("margin must be within [0,0.5), got %g", c.Margin)
	case c.PlateauRounds < 1:
		return fmt.Errorf("plateau_rounds must be positive, got %d", c.PlateauRounds)
	case c.MaxRounds < 1:
		return fmt.Errorf("max_rounds must be positive, got %d", c.MaxRounds)
	case c.MaxPlies < 1:
		return fmt.Errorf("max_plies must be positive, got %d", c.MaxPlies)
	case c.SearchDepth < 1:
		return fmt.Errorf("search_depth must be positive, got %d", c.SearchDepth)
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	case len(c.Openings) == 0:
		return fmt.Errorf("need at least one opening")
	}
	return nil
}
