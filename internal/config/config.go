// Package config loads alienness settings from defaults, an optional TOML
// file and ALIENNESS_* environment variables, in increasing precedence.
// Command-line flags are applied on top by the caller.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"alienness/internal/errors"
)

// Config is the resolved configuration for one run.
type Config struct {
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      LogConfig      `mapstructure:"log"`
}

// TaxonomyConfig points at the two reference files.
type TaxonomyConfig struct {
	Nodes       string `mapstructure:"nodes"`
	Significant string `mapstructure:"significant"`
}

type ScoringConfig struct {
	DonorTaxID    int64 `mapstructure:"donor_taxid"`
	ExcludedTaxID int64 `mapstructure:"excluded_taxid"`
	Threads       int   `mapstructure:"threads"`
}

type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
	Header bool   `mapstructure:"header"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Quiet   bool `mapstructure:"quiet"`
	Verbose bool `mapstructure:"verbose"`
}

// Defaults
const (
	DefaultNodes       = "./taxonomy/nodes_lite.dmp.gz"
	DefaultSignificant = "./taxonomy/significant_ids.txt.gz"
	DefaultOutput      = "alienness_results.tsv"
	EnvPrefix          = "ALIENNESS"
)

// SetDefaults configures default values for all options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("taxonomy.nodes", DefaultNodes)
	v.SetDefault("taxonomy.significant", DefaultSignificant)

	v.SetDefault("scoring.donor_taxid", 33208)   // Metazoa
	v.SetDefault("scoring.excluded_taxid", 10190) // Rotifera
	v.SetDefault("scoring.threads", 1)

	v.SetDefault("output.path", DefaultOutput)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.header", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.quiet", false)
	v.SetDefault("log.verbose", false)
}

// New returns a viper instance with defaults and environment binding.
// ALIENNESS_TAXONOMY_NODES overrides taxonomy.nodes, and so on.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads path (TOML) into v when path is non-empty, then unmarshals.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Scoring.DonorTaxID < 0:
		return usage("scoring.donor_taxid must be ≥ 0")
	case c.Scoring.ExcludedTaxID < 0:
		return usage("scoring.excluded_taxid must be ≥ 0")
	case c.Scoring.Threads < 0:
		return usage("scoring.threads must be ≥ 0")
	case c.Taxonomy.Nodes == "":
		return usage("taxonomy.nodes is required")
	case c.Taxonomy.Significant == "":
		return usage("taxonomy.significant is required")
	}
	switch c.Output.Format {
	case "text", "json", "jsonl":
	default:
		return usage("invalid output.format %q", c.Output.Format)
	}
	return nil
}

func usage(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrUsage)
}
