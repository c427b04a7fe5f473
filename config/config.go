package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/scramblebias/bias"
)

const (
	ConfigDebug      = "debug"
	ConfigMaxBit     = "max-bit"
	ConfigFromBit    = "from-bit"
	ConfigToBit      = "to-bit"
	ConfigFormat     = "format"
	ConfigReference  = "reference"
	ConfigConfidence = "confidence"
	ConfigCPUProfile = "cpu-profile"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// envPrefix prefixes every environment override, e.g. SCRAMBLEBIAS_MAX_BIT.
const envPrefix = "SCRAMBLEBIAS"

// MaxTableBit is the deepest bit a table may list; it is the last bit with
// a reference value.
const MaxTableBit = len(bias.Reference) - 1

var (
	ErrInvalidRange  = errors.New("invalid bit range")
	ErrUnknownFormat = errors.New("unknown output format")
)

type Config struct {
	*viper.Viper
}

func DefaultConfig() Config {
	c := Config{Viper: viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigMaxBit, bias.DefaultMaxBit)
	c.SetDefault(ConfigFromBit, 0)
	c.SetDefault(ConfigToBit, bias.DefaultMaxBit)
	c.SetDefault(ConfigFormat, FormatText)
	c.SetDefault(ConfigReference, true)
	c.SetDefault(ConfigConfidence, 95.0)
	c.SetDefault(ConfigCPUProfile, "")
	return c
}

// Load parses args as flags on top of the environment and the defaults.
// A flag that is set wins over the environment, which wins over defaults.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		*c = DefaultConfig()
	}
	fs := pflag.NewFlagSet("scramblebias", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, c.GetBool(ConfigDebug), "turn on debug logging")
	fs.Int(ConfigMaxBit, c.GetInt(ConfigMaxBit), "deepest bit to compute exactly; deeper bits are refused")
	fs.Int(ConfigFromBit, c.GetInt(ConfigFromBit), "first bit of the table")
	fs.Int(ConfigToBit, c.GetInt(ConfigToBit), "last bit of the table")
	fs.String(ConfigFormat, c.GetString(ConfigFormat), "output format: text, json or yaml")
	fs.Bool(ConfigReference, c.GetBool(ConfigReference), "show documented reference values next to computed ones")
	fs.Float64(ConfigConfidence, c.GetFloat64(ConfigConfidence), "confidence level in percent for the ratio interval")
	fs.String(ConfigCPUProfile, c.GetString(ConfigCPUProfile), "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	return c.Validate()
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	from, to := c.GetInt(ConfigFromBit), c.GetInt(ConfigToBit)
	if from < 0 || to > MaxTableBit || from > to {
		return fmt.Errorf("%w: from-bit %d, to-bit %d (must satisfy 0 <= from <= to <= %d)",
			ErrInvalidRange, from, to, MaxTableBit)
	}
	if mb := c.GetInt(ConfigMaxBit); mb < 0 || mb > MaxTableBit {
		return fmt.Errorf("%w: max-bit %d (must be between 0 and %d)", ErrInvalidRange, mb, MaxTableBit)
	}
	if conf := c.GetFloat64(ConfigConfidence); conf <= 0 || conf >= 100 {
		return fmt.Errorf("%w: confidence %v (must be strictly between 0 and 100)", ErrInvalidRange, conf)
	}
	switch c.GetString(ConfigFormat) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.GetString(ConfigFormat))
	}
	return nil
}

// SanitizedSettings returns the settings without empty values, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for k, v := range settings {
		if s, ok := v.(string); ok && s == "" {
			delete(settings, k)
		}
	}
	return settings
}
