// Package config loads kicad-bom settings from defaults, an optional config
// file, KICADBOM_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/bom"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/netlist"
	"github.com/OpenTraceLab/OpenTraceBOM/pkg/refdes"
)

// Keys
const (
	Fields                  = "fields"
	Collation               = "collation"
	FilterExcludeDNP        = "filter.exclude_dnp"
	FilterExcludeBoard      = "filter.exclude_board"
	FilterExcludeReferences = "filter.exclude_references"
	FilterExcludeValues     = "filter.exclude_values"
	FilterExcludeFootprints = "filter.exclude_footprints"
	EnvPrefix               = "kicadbom"
	ConfigName              = "kicad-bom"
	userConfigDirName       = "kicad-bom"
)

// Config holds the export settings
type Config struct {
	Fields    []string     `mapstructure:"fields" validate:"required,min=1,unique,dive,required"`
	Collation string       `mapstructure:"collation" validate:"required,oneof=natural lexical unicode"`
	Filter    FilterConfig `mapstructure:"filter"`
}

// FilterConfig selects which components reach the BOM
type FilterConfig struct {
	ExcludeDNP        bool     `mapstructure:"exclude_dnp"`
	ExcludeBoard      bool     `mapstructure:"exclude_board"`
	ExcludeReferences []string `mapstructure:"exclude_references" validate:"dive,required"`
	ExcludeValues     []string `mapstructure:"exclude_values" validate:"dive,required"`
	ExcludeFootprints []string `mapstructure:"exclude_footprints" validate:"dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(Fields, bom.DefaultFields())
	v.SetDefault(Collation, string(refdes.Natural))
	v.SetDefault(FilterExcludeDNP, false)
	v.SetDefault(FilterExcludeBoard, false)
	v.SetDefault(FilterExcludeReferences, netlist.DefaultExcludedReferences)
	v.SetDefault(FilterExcludeValues, netlist.DefaultExcludedValues)
	v.SetDefault(FilterExcludeFootprints, netlist.DefaultExcludedFootprints)
}

// New returns a viper instance with defaults and environment binding.
// Flags are bound by the caller.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile, or searches the working directory and the user
// config directory for kicad-bom.{yaml,toml,json} when configFile is empty.
// A missing searched-for file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, userConfigDirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals and validates the settings held by v
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Collation = strings.ToLower(strings.TrimSpace(cfg.Collation))

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// NetlistFilter compiles the filter settings. Exclude-from-BOM is always on.
func (c *Config) NetlistFilter() (netlist.Filter, error) {
	f, err := netlist.NewFilter(
		c.Filter.ExcludeReferences,
		c.Filter.ExcludeValues,
		c.Filter.ExcludeFootprints,
	)
	if err != nil {
		return netlist.Filter{}, err
	}
	f.ExcludeBOM = true
	f.ExcludeDNP = c.Filter.ExcludeDNP
	f.ExcludeBoard = c.Filter.ExcludeBoard
	return f, nil
}

// Exporter builds a BOM exporter from the settings
func (c *Config) Exporter() (*bom.Exporter, error) {
	mode, err := refdes.ParseMode(c.Collation)
	if err != nil {
		return nil, err
	}
	coll, err := refdes.New(mode)
	if err != nil {
		return nil, err
	}
	filter, err := c.NetlistFilter()
	if err != nil {
		return nil, err
	}

	return &bom.Exporter{
		Fields:    append([]string(nil), c.Fields...),
		Collation: coll,
		Filter:    filter,
	}, nil
}
