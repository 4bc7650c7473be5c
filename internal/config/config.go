package config

import (
	"os"

	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/grid"
	"github.com/san-kum/orbitgrid/internal/maps"
	"gopkg.in/yaml.v3"
)

const (
	DefaultResolution    = grid.DefaultResolution
	DefaultPoints        = 450
	DefaultTrainFraction = 2.0 / 3.0
	DefaultWebMultiplier = 7
	DefaultLogLevel      = "info"
)

type Config struct {
	Resolution    int            `yaml:"resolution"`
	Points        int            `yaml:"points"`
	TrainFraction float64        `yaml:"train_fraction"`
	Multipliers   map[string]int `yaml:"multipliers"`
	Seed          *int64         `yaml:"seed,omitempty"`
	Independent   bool           `yaml:"independent_split"`
	Parallel      bool           `yaml:"parallel"`
	Tolerant      bool           `yaml:"tolerant"`
	External      []SourceConfig `yaml:"external,omitempty"`
	LogLevel      string         `yaml:"log_level"`
}

// SourceConfig names one externally computed trajectory file.
type SourceConfig struct {
	Path  string `yaml:"path"`
	Label int    `yaml:"label"`
}

func DefaultConfig() *Config {
	return &Config{
		Resolution:    DefaultResolution,
		Points:        DefaultPoints,
		TrainFraction: DefaultTrainFraction,
		Multipliers: map[string]int{
			maps.Standard.String():    1,
			maps.DeVogelaere.String(): 1,
			maps.Web.String():         DefaultWebMultiplier,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load overlays the file at path on top of DefaultConfig.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver overlays the file at path on a copy of base. Keys the file
// leaves out keep the base value; multipliers merge per family.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, dynamo.Configf("file", "%s: %v", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings describe a consistent pipeline.
func (c *Config) Validate() error {
	if c.Resolution <= 0 {
		return dynamo.Configf("resolution", "must be positive, got %d", c.Resolution)
	}
	if c.Points <= 0 {
		return dynamo.Configf("points", "must be positive, got %d", c.Points)
	}
	if 2*c.Points != c.Resolution*c.Resolution {
		return dynamo.Configf("points", "%d points fill %d cells, resolution %d needs %d",
			c.Points, 2*c.Points, c.Resolution, c.Resolution*c.Resolution)
	}
	if !(c.TrainFraction > 0 && c.TrainFraction < 1) {
		return dynamo.Configf("train_fraction", "must lie in (0, 1), got %v", c.TrainFraction)
	}
	for name, m := range c.Multipliers {
		kind, err := maps.ParseKind(name)
		if err != nil {
			return err
		}
		if kind == maps.External {
			return dynamo.Configf("multipliers", "external trajectories are read as given, not simulated")
		}
		if m < 1 {
			return dynamo.Configf("multipliers", "%s: must be at least 1, got %d", name, m)
		}
	}
	for i, src := range c.External {
		if src.Path == "" {
			return dynamo.Configf("external", "entry %d has no path", i)
		}
		if err := dynamo.CheckLabel(src.Label); err != nil {
			return err
		}
	}
	return nil
}

// Multiplier returns the iteration multiplier for kind, 1 if unset.
func (c *Config) Multiplier(kind maps.Kind) int {
	if m, ok := c.Multipliers[kind.String()]; ok && m > 0 {
		return m
	}
	return 1
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Multipliers != nil {
		cp.Multipliers = make(map[string]int, len(c.Multipliers))
		for k, v := range c.Multipliers {
			cp.Multipliers[k] = v
		}
	}
	if c.Seed != nil {
		s := *c.Seed
		cp.Seed = &s
	}
	cp.External = append([]SourceConfig(nil), c.External...)
	return &cp
}

// WithSeed returns a copy of c using seed.
func (c *Config) WithSeed(seed int64) *Config {
	cp := c.Clone()
	cp.Seed = &seed
	return cp
}
