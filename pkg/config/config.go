// Package config provides configuration management for the qrecc tool
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Davincible/qrecc/pkg/reedsolomon"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. QRECC_FIELD_PRESET.
const EnvPrefix = "QRECC"

// PresetCustom selects the field from the primitive/size/generator_base keys.
const PresetCustom = "custom"

// Config represents the main configuration structure
type Config struct {
	Field  FieldConfig  `mapstructure:"field"`
	Decode DecodeConfig `mapstructure:"decode"`
	Output OutputConfig `mapstructure:"output"`
	Stress StressConfig `mapstructure:"stress"`
}

// FieldConfig describes the Galois field of the symbol family
type FieldConfig struct {
	Preset        string `mapstructure:"preset"`         // Default: qr
	Primitive     int    `mapstructure:"primitive"`      // Used when preset is custom
	Size          int    `mapstructure:"size"`           // Used when preset is custom
	GeneratorBase int    `mapstructure:"generator_base"` // Used when preset is custom
}

// DecodeConfig contains defaults for decode and encode
type DecodeConfig struct {
	ECCodewords int `mapstructure:"ec_codewords"` // Default: 10
}

// OutputConfig contains output settings
type OutputConfig struct {
	Format string `mapstructure:"format"` // hex or dec
	Color  bool   `mapstructure:"color"`
}

// StressConfig contains defaults for the stress command
type StressConfig struct {
	Trials        int `mapstructure:"trials"`
	Workers       int `mapstructure:"workers"`
	DataCodewords int `mapstructure:"data_codewords"`
	Errors        int `mapstructure:"errors"` // -1 means ec_codewords/2
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("field.preset", "qr")
	v.SetDefault("field.primitive", 0x11D)
	v.SetDefault("field.size", 256)
	v.SetDefault("field.generator_base", 0)
	v.SetDefault("decode.ec_codewords", 10)
	v.SetDefault("output.format", "hex")
	v.SetDefault("output.color", true)
	v.SetDefault("stress.trials", 1000)
	v.SetDefault("stress.workers", 4)
	v.SetDefault("stress.data_codewords", 16)
	v.SetDefault("stress.errors", -1)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		// defaults are static and always decode
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration from path, applies QRECC_* environment
// overrides and fills defaults. An empty path falls back to the default
// location, which may be absent.
func Load(path string) (*Config, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = getConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no command can use
func (c *Config) Validate() error {
	if c.Decode.ECCodewords < 0 {
		return fmt.Errorf("decode.ec_codewords must not be negative, got %d", c.Decode.ECCodewords)
	}
	switch c.Output.Format {
	case "hex", "dec":
	default:
		return fmt.Errorf("output.format must be hex or dec, got %q", c.Output.Format)
	}
	if c.Stress.Trials <= 0 {
		return fmt.Errorf("stress.trials must be positive, got %d", c.Stress.Trials)
	}
	if c.Stress.Workers <= 0 {
		return fmt.Errorf("stress.workers must be positive, got %d", c.Stress.Workers)
	}
	if c.Stress.DataCodewords <= 0 {
		return fmt.Errorf("stress.data_codewords must be positive, got %d", c.Stress.DataCodewords)
	}
	if _, err := c.Field.Resolve(); err != nil {
		return err
	}
	return nil
}

// Resolve returns the configured field, building a custom one if requested.
func (f FieldConfig) Resolve() (*reedsolomon.Field, error) {
	name := strings.ToLower(strings.TrimSpace(f.Preset))
	if name == PresetCustom {
		field, err := reedsolomon.NewField(f.Primitive, f.Size, f.GeneratorBase)
		if err != nil {
			return nil, fmt.Errorf("invalid custom field: %w", err)
		}
		return field, nil
	}

	field, ok := reedsolomon.Preset(name)
	if !ok {
		return nil, fmt.Errorf("unknown field preset %q (known: %s, %s)",
			f.Preset, strings.Join(reedsolomon.PresetNames(), ", "), PresetCustom)
	}
	return field, nil
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	// Check for custom config path
	if customPath := os.Getenv("QRECC_CONFIG"); customPath != "" {
		return customPath, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "qrecc", "config.yaml"), nil
	}

	// Default to ~/.config/qrecc/config.yaml
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "qrecc", "config.yaml"), nil
}
