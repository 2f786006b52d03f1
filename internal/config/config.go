package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/rgs/internal/classify"
	"github.com/cleared-dev/rgs/internal/code"
	"github.com/cleared-dev/rgs/internal/hierarchy"
	"github.com/cleared-dev/rgs/internal/model"
	"github.com/cleared-dev/rgs/internal/report"
	"github.com/cleared-dev/rgs/internal/statements"
)

// FileName is the project configuration file at the project root.
const FileName = "rgs.yaml"

// Config represents the top-level rgs.yaml configuration.
type Config struct {
	Business       BusinessConfig       `yaml:"business"`
	Classification ClassificationConfig `yaml:"classification"`
	Hierarchy      HierarchyConfig      `yaml:"hierarchy"`
	CashFlow       CashFlowConfig       `yaml:"cash_flow"`
	Paths          PathsConfig          `yaml:"paths"`
	Server         ServerConfig         `yaml:"server"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string           `yaml:"name"`
	EntityType model.EntityType `yaml:"entity_type"`
}

// ClassificationConfig drives the account classifier.
type ClassificationConfig struct {
	DividendMarker string           `yaml:"dividend_marker"`
	Ranges         []classify.Range `yaml:"ranges"`
}

// HierarchyConfig describes the code layout.
type HierarchyConfig struct {
	// PrefixDigits is the significant-digit count per level; index 0 is level 1.
	PrefixDigits []int `yaml:"prefix_digits"`
}

// CashFlowConfig selects the investing band, half-open.
type CashFlowConfig struct {
	InvestingStart int `yaml:"investing_start"`
	InvestingEnd   int `yaml:"investing_end"`
}

// PathsConfig locates project files, relative to the project root.
type PathsConfig struct {
	Accounts string `yaml:"accounts"`
	Balances string `yaml:"balances"`
	Database string `yaml:"database"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads an rgs.yaml file from disk. Sections missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string, entityType model.EntityType) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Classification: ClassificationConfig{
			DividendMarker: classify.DefaultDividendMarker,
			Ranges:         classify.DefaultRanges(),
		},
		Hierarchy: HierarchyConfig{
			PrefixDigits: []int{2, 3, 4, 5},
		},
		CashFlow: CashFlowConfig{
			InvestingStart: statements.DefaultInvestingBand.Start,
			InvestingEnd:   statements.DefaultInvestingBand.End,
		},
		Paths: PathsConfig{
			Accounts: "accounts/chart-of-accounts.csv",
			Balances: "balances.csv",
			Database: "rgs.db",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Business.EntityType {
	case "", model.EntitySoleTrader, model.EntityProprietor, model.EntityCorporation, model.EntityFoundation:
	default:
		errs = append(errs, fmt.Errorf("business.entity_type %q: want zzp, ez, bv or svc", c.Business.EntityType))
	}

	for i, r := range c.Classification.Ranges {
		if r.End <= r.Start {
			errs = append(errs, fmt.Errorf("classification.ranges[%d]: end %d <= start %d", i, r.End, r.Start))
		}
		if !r.Class.Valid() || r.Class == model.ClassUnknown {
			errs = append(errs, fmt.Errorf("classification.ranges[%d]: unknown class %q", i, r.Class))
		}
	}

	prev := 0
	for i, d := range c.Hierarchy.PrefixDigits {
		if d <= prev {
			errs = append(errs, fmt.Errorf("hierarchy.prefix_digits[%d]: %d must exceed the previous level", i, d))
		}
		prev = d
	}

	if c.CashFlow.InvestingEnd <= c.CashFlow.InvestingStart {
		errs = append(errs, fmt.Errorf("cash_flow: investing_end %d <= investing_start %d", c.CashFlow.InvestingEnd, c.CashFlow.InvestingStart))
	}

	for name, p := range map[string]string{"accounts": c.Paths.Accounts, "balances": c.Paths.Balances, "database": c.Paths.Database} {
		if p == "" {
			errs = append(errs, fmt.Errorf("paths.%s is empty", name))
		}
	}

	return errors.Join(errs...)
}

// Classifier builds the account classifier.
func (c *Config) Classifier() *classify.Classifier {
	return classify.New(c.Classification.DividendMarker, c.Classification.Ranges)
}

// Compiler builds the hierarchy compiler.
func (c *Config) Compiler() *hierarchy.Compiler {
	return hierarchy.NewCompiler(code.PrefixWidths(c.Hierarchy.PrefixDigits), c.Classifier())
}

// Generator builds the statement generator.
func (c *Config) Generator() *statements.Generator {
	return statements.New(c.Classifier(), statements.Band{Start: c.CashFlow.InvestingStart, End: c.CashFlow.InvestingEnd})
}

// Builder wires the whole pipeline.
func (c *Config) Builder() *report.Builder {
	return report.NewBuilder(c.Compiler(), c.Generator())
}

// Resolve joins a configured path onto the project root unless it is
// already absolute.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
