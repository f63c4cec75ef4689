// Package config resolves ivtimer settings from defaults, a YAML file,
// IVTIMER_* environment variables and command line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/ivtimer/pkg/timer"
)

// EnvPrefix is prepended to every environment variable viper reads
const EnvPrefix = "IVTIMER"

// Config is the user facing configuration. Enum values are kept as names so
// the file stays readable; Timer converts them.
type Config struct {
	Verbosity   string `mapstructure:"verbosity" yaml:"verbosity"`
	Unit        string `mapstructure:"unit" yaml:"unit"`
	Clock       string `mapstructure:"clock" yaml:"clock"`
	Backend     string `mapstructure:"backend" yaml:"backend"`
	StrictOrder bool   `mapstructure:"strict" yaml:"strict"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format"`
	Output      string `mapstructure:"output" yaml:"output"`
	Comment     string `mapstructure:"comment" yaml:"comment"`

	// Source is the config file that was read, empty if none
	Source string `mapstructure:"-" yaml:"-"`
}

// SetDefaults registers the built-in defaults on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("verbosity", "errors")
	v.SetDefault("unit", "seconds")
	v.SetDefault("clock", "monotonic")
	v.SetDefault("backend", string(timer.BackendSystem))
	v.SetDefault("strict", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("output", "plain")
	v.SetDefault("comment", "#")
}

// Load reads configuration into v and decodes it. An explicit path must
// exist. Without one, $HOME/.ivtimer/config.yaml is used, else ./ivtimer.yaml,
// and having neither is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	return &cfg, nil
}

// findConfigFile returns the first existing default config file, or ""
func findConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".ivtimer", "config.yaml"))
	}
	candidates = append(candidates, "ivtimer.yaml")

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Timer validates the names and converts them into a timer.Config
func (c *Config) Timer() (timer.Config, error) {
	out := timer.DefaultConfig()
	var errs []error

	verbosity, err := timer.ParseVerbosity(c.Verbosity)
	if err != nil {
		errs = append(errs, err)
	}
	out.Verbosity = verbosity

	if c.Unit != "" {
		unit, err := timer.ParseUnit(c.Unit)
		if err != nil {
			errs = append(errs, err)
		}
		out.DefaultUnit = unit
	}

	if c.Clock != "" {
		clock, err := timer.ParseClockSource(c.Clock)
		if err != nil {
			errs = append(errs, err)
		}
		out.DefaultClock = clock
	}

	backend, err := timer.ParseBackend(c.Backend)
	if err != nil {
		errs = append(errs, err)
	}
	out.Backend = backend

	switch strings.ToLower(c.LogFormat) {
	case "", "text":
	case "json":
		out.JSONLogs = true
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	out.StrictOrder = c.StrictOrder

	if len(errs) > 0 {
		return timer.DefaultConfig(), fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return out, nil
}

// WriteYAML renders the configuration as YAML
func (c *Config) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return encoder.Close()
}
