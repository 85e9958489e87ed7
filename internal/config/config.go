package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/zjy-dev/lcovmerge/internal/logger"
)

const (
	// DefaultConfigName is the base name of the config file looked up
	// when no file is given explicitly.
	DefaultConfigName = "lcovmerge"
	DefaultConfigType = "yaml"
)

// Config holds the settings of a merge run.
type Config struct {
	// Output is the path of the merged LCOV file.
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
	Color    bool   `mapstructure:"color"`
}

// Load reads the configuration into a Config.
//
// When configFile is empty, lcovmerge.yaml is looked up in the working
// directory and in configs/; a missing file is not an error. An explicitly
// named file must exist. Values already bound on v (for example command
// line flags) take precedence over the file.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType(DefaultConfigType)
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("color", true)
}
