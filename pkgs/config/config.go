// Package config holds the knave tool settings. Values come from the
// environment first and are then overridden by command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/xyproto/env/v2"

	knaveerrors "github.com/opal-lang/knave/pkgs/errors"
	"github.com/opal-lang/knave/pkgs/format"
	"github.com/opal-lang/knave/pkgs/lexer"
)

// Environment variables read by FromEnv
const (
	EnvFormat          = "KNAVE_FORMAT"
	EnvDebug           = "KNAVE_DEBUG_LEXER"
	EnvLegacyCurlyPair = "KNAVE_LEGACY_CURLY_PAIR"
	EnvStats           = "KNAVE_STATS"
	EnvNoColor         = "NO_COLOR"
)

// Config controls a scan run
type Config struct {
	Format          string // one of format.Formats()
	Debug           bool   // trace tokens on stderr
	LegacyCurlyPair bool   // report "{}" as a closing brace
	Stats           bool   // print a summary after the scan
	Digest          bool   // print the token stream digest after the scan
	Watch           bool   // rescan whenever the file changes
	NoColor         bool
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{Format: format.FormatText}
}

// FromEnv returns Default overridden by the KNAVE_* variables and NO_COLOR.
// NO_COLOR disables color when set. The environment is reread on every call.
func FromEnv() Config {
	env.Load()

	cfg := Default()
	cfg.Format = strings.ToLower(env.Str(EnvFormat, cfg.Format))
	cfg.Debug = env.Bool(EnvDebug)
	cfg.LegacyCurlyPair = env.Bool(EnvLegacyCurlyPair)
	cfg.Stats = env.Bool(EnvStats)
	cfg.NoColor = env.Has(EnvNoColor)
	return cfg
}

// Validate rejects settings the driver cannot honor
func (c Config) Validate() error {
	if !format.IsFormat(c.Format) {
		return knaveerrors.NewConfigError(fmt.Sprintf("unsupported format %q", c.Format)).
			WithHint(fmt.Sprintf("use one of: %s", strings.Join(format.Formats(), ", "))).
			WithContext("format", c.Format)
	}
	return nil
}

// LexerOptions translates the configuration into lexer options
func (c Config) LexerOptions() []lexer.LexerOpt {
	var opts []lexer.LexerOpt
	if c.LegacyCurlyPair {
		opts = append(opts, lexer.WithLegacyCurlyPair())
	}
	if c.Stats {
		opts = append(opts, lexer.WithTelemetryBasic())
	}
	return opts
}
