package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/addressbook/internal/shell"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix scopes environment overrides, e.g. ADDRESSBOOK_LOG_LEVEL.
	envPrefix = "ADDRESSBOOK"

	cfgKeyLogLevel = "log_level"
	cfgKeyOutput   = "output"
	cfgKeyPrompt   = "prompt"
)

// loadConfig reads config.yaml from configDir using Viper and applies
// environment and flag overrides. A missing config.yaml is not an error.
func loadConfig(configDir string, f *rootFlags) (shell.Config, error) {
	def := shell.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyOutput, def.Output)
	v.SetDefault(cfgKeyPrompt, def.Prompt)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return shell.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg shell.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return shell.Config{}, fmt.Errorf("decode config: %w", err)
	}

	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.jsonMode {
		cfg.Output = shell.OutputJSON
	}

	if err := cfg.Validate(); err != nil {
		return shell.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
