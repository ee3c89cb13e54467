// Package config resolves mpycross CLI settings.
// Precedence: flag > env > config file > default.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hyperifyio/mpycross"
)

// EnvPrefix is prepended to every key, e.g. MPYCROSS_BINARY.
const EnvPrefix = "MPYCROSS"

// LegacyBinaryEnv is honoured after MPYCROSS_BINARY.
const LegacyBinaryEnv = "MPY_CROSS"

// DefaultFileName is looked up in the working directory when no --config
// flag is given; any extension viper understands is accepted.
const DefaultFileName = "mpycross"

const (
	KeyBinary   = "binary"
	KeyOpt      = "opt"
	KeyMarch    = "march"
	KeyLogLevel = "log-level"
	KeyAuditDir = "audit-dir"
)

// Config holds resolved settings.
type Config struct {
	Binary   string
	Opt      *int // nil when not configured anywhere
	March    mpycross.Arch
	LogLevel log.Level
	AuditDir string
	// File is the config file that was read, "" when none.
	File string
}

// Load builds a Config from file (optional), the environment and every
// flag in sets whose name matches a key.
func Load(file string, sets ...*pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "warn")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyBinary, EnvPrefix+"_BINARY", LegacyBinaryEnv); err != nil {
		return Config{}, err
	}
	for _, fs := range sets {
		if fs == nil {
			continue
		}
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName(DefaultFileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Binary:   strings.TrimSpace(v.GetString(KeyBinary)),
		AuditDir: strings.TrimSpace(v.GetString(KeyAuditDir)),
		File:     v.ConfigFileUsed(),
	}
	if v.IsSet(KeyOpt) {
		n, err := parseOpt(v.GetString(KeyOpt))
		if err != nil {
			return Config{}, err
		}
		cfg.Opt = &n
	}
	if raw := strings.TrimSpace(v.GetString(KeyMarch)); raw != "" {
		cfg.March = ParseArch(raw)
	}
	lvl, err := log.ParseLevel(strings.TrimSpace(v.GetString(KeyLogLevel)))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

// ParseArch maps NATIVE_ARCH_* names and known tokens to their token.
// Anything else is returned as is and left for mpy-cross to reject.
func ParseArch(s string) mpycross.Arch {
	if a, ok := mpycross.LookupArch(s); ok {
		return a
	}
	return mpycross.Arch(strings.TrimSpace(s))
}

func parseOpt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid optimisation level %q", KeyOpt, s)
	}
	return n, nil
}
