package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = ".qmc.yaml"

// Notation names how complemented literals are written.
type Notation string

const (
	NotationPrime Notation = "prime" // A'
	NotationBang  Notation = "bang"  // !A
	NotationTilde Notation = "tilde" // ~A
)

// Config represents the overall configuration of the minimizer.
type Config struct {
	Name     string      `yaml:"name"`
	Notation Notation    `yaml:"notation"`
	Labels   []string    `yaml:"labels"`
	MaxVars  int         `yaml:"max-vars"`
	Verify   bool        `yaml:"verify"`
	Cache    CacheConfig `yaml:"cache"`
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	MaxAge  time.Duration `yaml:"max-age"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Name:     "qmc",
		Notation: NotationPrime,
		Labels:   []string{},
		MaxVars:  16,
		Verify:   true,
		Cache: CacheConfig{
			Dir:    ".qmc-cache",
			MaxAge: 24 * time.Hour,
		},
	}
}

// Load reads a configuration file on top of the defaults. A missing file
// is not an error.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}

	return config, config.Validate()
}

// Validate checks the values that Load cannot check by type.
func (c Config) Validate() error {
	switch c.Notation {
	case NotationPrime, NotationBang, NotationTilde:
	default:
		return fmt.Errorf("unknown notation %q", c.Notation)
	}
	if c.MaxVars < 1 || c.MaxVars > 30 {
		return fmt.Errorf("max-vars must be between 1 and 30, got %d", c.MaxVars)
	}
	return nil
}

// Write stores the configuration as YAML at path.
func Write(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
