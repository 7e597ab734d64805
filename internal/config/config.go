package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/feesched/internal/fees"
	"github.com/gyeh/feesched/internal/store"
)

// Config holds all runtime configuration for a feesched run.
type Config struct {
	DSN              string
	LogFormat        string // "text" or "json"
	ConversionFactor float64
	Files            store.Files
}

// yamlConfig is the on-disk YAML structure. File paths group under a
// "files" key; the conversion factor overrides the schedule-year default.
type yamlConfig struct {
	ConversionFactor float64 `yaml:"conversion_factor"`
	Files            struct {
		ZipCounty      string `yaml:"zip_county"`
		CountyNames    string `yaml:"county_names"`
		Locality       string `yaml:"locality"`
		GPCI           string `yaml:"gpci"`
		RVU            string `yaml:"rvu"`
		PTP            string `yaml:"ptp"`
		MUE            string `yaml:"mue"`
		MUEServiceType string `yaml:"mue_service_type"`
		Addon          string `yaml:"addon"`
	} `yaml:"files"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set on the Config (from flags) win over file values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if c.ConversionFactor == 0 {
		c.ConversionFactor = yc.ConversionFactor
	}
	merge := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	merge(&c.Files.ZipCounty, yc.Files.ZipCounty)
	merge(&c.Files.CountyNames, yc.Files.CountyNames)
	merge(&c.Files.Locality, yc.Files.Locality)
	merge(&c.Files.GPCI, yc.Files.GPCI)
	merge(&c.Files.RVU, yc.Files.RVU)
	merge(&c.Files.PTP, yc.Files.PTP)
	merge(&c.Files.MUE, yc.Files.MUE)
	merge(&c.Files.MUEServiceType, yc.Files.MUEServiceType)
	merge(&c.Files.Addon, yc.Files.Addon)
	return nil
}

// EffectiveConversionFactor returns the configured conversion factor, or the
// schedule-year default when unset.
func (c *Config) EffectiveConversionFactor() float64 {
	if c.ConversionFactor > 0 {
		return c.ConversionFactor
	}
	return fees.DefaultConversionFactor
}

// Validate checks fields every command needs.
func (c *Config) Validate() error {
	if c.ConversionFactor < 0 {
		return fmt.Errorf("conversion factor must be positive, got %v", c.ConversionFactor)
	}
	return nil
}

// ValidateWithDSN checks that a database connection string is configured.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}

// ValidateFiles checks that every configured reference file exists. Paths
// left empty are allowed: those tables are simply skipped.
func (c *Config) ValidateFiles() error {
	paths := []string{
		c.Files.ZipCounty, c.Files.CountyNames, c.Files.Locality,
		c.Files.GPCI, c.Files.RVU, c.Files.PTP, c.Files.MUE, c.Files.Addon,
	}
	any := false
	for _, p := range paths {
		if p == "" {
			continue
		}
		any = true
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("reference file not accessible: %w", err)
		}
	}
	if !any {
		return fmt.Errorf("no reference files configured")
	}
	return nil
}
