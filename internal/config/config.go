// # internal/config/config.go
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"enumsed/internal/errors"
)

type Config struct {
	StubPaths        []string `toml:"stub_paths"`
	Bindings         []string `toml:"bindings"` // "OLD,NEW" pairs
	PreferredModules []string `toml:"preferred_modules"`
	Seed             []Seed   `toml:"seed"`
	Exclude          Exclude  `toml:"exclude"`
	Output           Output   `toml:"output"`
	Watch            Watch    `toml:"watch"`
}

// Seed is an extra hard-coded substitution emitted regardless of what the
// stubs contain, for members the binding renamed outright.
type Seed struct {
	Member   string `toml:"member"`
	QualName string `toml:"qual_name"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Output struct {
	Sed       string `toml:"sed"`
	Conflicts string `toml:"conflicts"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "invalid config file")
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.PreferredModules) == 0 {
		cfg.PreferredModules = []string{"QtCore", "QtGui", "QtWidgets"}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
}

func (c *Config) Validate() error {
	for _, b := range c.Bindings {
		if strings.Count(b, ",") != 1 {
			return (&errors.DomainError{
				Code:    errors.CodeValidation,
				Message: "binding must be OLD,NEW",
			}).WithContext(errors.CtxPattern, b)
		}
	}
	for _, s := range c.Seed {
		if s.Member == "" || s.QualName == "" {
			return errors.New(errors.CodeValidation, "seed entries need member and qual_name")
		}
	}
	return nil
}
