package config

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"motion2constatus/translate"
)

// EnvPrefix prefixes environment variables that override flags, so
// --log-level may also be set with MOTION2CONSTATUS_LOG_LEVEL.
const EnvPrefix = "MOTION2CONSTATUS"

// Config holds the translator's own settings, not the translated files.
type Config struct {
	LogLevel log.Level
	Inherit  translate.Inherit
	MaxDepth int

	DryRun bool
	Watch  bool

	// If set, run metrics are written here after every run.
	MetricsTextfile string
}

// NewViper returns a viper instance reading EnvPrefix environment variables.
// Flags are bound to it by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log-level", "info")
	v.SetDefault("inherit", string(translate.InheritLayered))
	v.SetDefault("max-depth", translate.DefaultMaxDepth)
	return v
}

// FromViper validates and returns the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	level, err := log.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, errors.Wrap(err, "log-level")
	}

	inherit := translate.Inherit(v.GetString("inherit"))
	switch inherit {
	case translate.InheritLayered, translate.InheritShared:
	default:
		return nil, errors.Errorf("inherit: unknown mode %q, want %q or %q", inherit, translate.InheritLayered, translate.InheritShared)
	}

	depth := v.GetInt("max-depth")
	if depth <= 0 {
		return nil, errors.Errorf("max-depth: must be positive, got %d", depth)
	}

	config := &Config{
		LogLevel:        level,
		Inherit:         inherit,
		MaxDepth:        depth,
		DryRun:          v.GetBool("dry-run"),
		Watch:           v.GetBool("watch"),
		MetricsTextfile: v.GetString("metrics-textfile"),
	}
	if config.DryRun && config.Watch {
		return nil, errors.New("dry-run and watch cannot be combined")
	}
	return config, nil
}

// Apply configures the global logger and reports the settings.
func (c *Config) Apply() {
	log.SetLevel(c.LogLevel)
	log.Debugf("Loaded configuration: %v", spew.Sdump(c))
}

// TranslateOptions returns the options for a translate.Translator.
func (c *Config) TranslateOptions() translate.Options {
	return translate.Options{
		Inherit:  c.Inherit,
		MaxDepth: c.MaxDepth,
	}
}
