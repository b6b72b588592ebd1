package shell

import (
	"errors"
	"fmt"

	"github.com/go-kit/log/level"
)

// Output formats for listing contacts.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config holds the settings of an interactive session. It is loaded from
// config.yaml by the CLI.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Output   string `mapstructure:"output" yaml:"output"`
	Prompt   string `mapstructure:"prompt" yaml:"prompt"`
}

// Config validation errors.
var (
	ErrOutputUnknown   = errors.New("unknown output format")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// DefaultConfig returns the settings used when config.yaml is absent.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output:   OutputTable,
		Prompt:   "Enter a command: ",
	}
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Output != OutputTable && c.Output != OutputJSON {
		return fmt.Errorf("%w %q (valid: %s, %s)", ErrOutputUnknown, c.Output, OutputTable, OutputJSON)
	}
	if _, err := LevelFilter(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LevelFilter returns the go-kit level filter option for a log level name.
// Returns ErrLogLevelUnknown for anything but debug, info, warn or error.
func LevelFilter(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrLogLevelUnknown, name)
	}
}
