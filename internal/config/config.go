package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sigreer/scsitree/internal/output"
	"github.com/sigreer/scsitree/internal/topology"
)

// Config holds the settings of one run. It is filled from command line
// flags; there is no configuration file.
type Config struct {
	SysfsRoot string
	Format    string
	Layout    string
	LogLevel  string
	Workers   int
	Expanders bool
	SortKeys  bool
}

// defaultConfig mirrors the plain `scsitree` invocation
var defaultConfig = Config{
	SysfsRoot: topology.DefaultRoot,
	Format:    string(output.FormatJSON),
	Layout:    string(topology.LayoutFlat),
	LogLevel:  "error",
	Workers:   1,
	SortKeys:  true,
}

// maxWorkers bounds --workers
const maxWorkers = 64

var ErrInvalid = errors.New("invalid configuration")

// Default returns a copy of the default settings
func Default() Config {
	return defaultConfig
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	if c.SysfsRoot == "" {
		return fmt.Errorf("%w: sysfs root must not be empty", ErrInvalid)
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := topology.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("%w: workers must be between 1 and %d, got %d", ErrInvalid, maxWorkers, c.Workers)
	}
	return nil
}

// DiscoveryOptions converts the settings into topology options
func (c *Config) DiscoveryOptions(log logrus.FieldLogger) topology.Options {
	return topology.Options{
		Root:      c.SysfsRoot,
		Expanders: c.Expanders,
		Workers:   c.Workers,
		Log:       log,
	}
}
