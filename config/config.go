// Package config provides configuration management for bsreshape.
// It loads settings from environment variables and .env files, and reads
// optional YAML plans that override the sheet layout and the recipe.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/bsreshape"
)

const (
	// DefaultFile is the sheet rewritten when nothing else is configured.
	DefaultFile = "frontend/public/data/balance-sheet.csv"
	// DefaultPruneFile is the sheet pruned when nothing else is configured.
	DefaultPruneFile = "frontend/public/data/dashboard-data.csv"
	// DefaultPrunePrefix marks the SEM popup ad-spend rows of the dashboard sheet.
	DefaultPrunePrefix = "팝업_SEM광고비_"
)

// Config represents the application configuration.
type Config struct {
	// File is the sheet to rewrite.
	File string
	// PlanPath is an optional YAML file overriding layout and recipe.
	PlanPath string
	// HistoryDB is an optional SQLite database recording runs.
	HistoryDB string
	// ExportPath is an optional .xlsx or .parquet copy of the new block.
	ExportPath string
	// PruneFile is the sheet the prune command rewrites.
	PruneFile string
	// PrunePrefix selects the lines the prune command removes.
	PrunePrefix string
	Debug       bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	return &Config{
		File:        getEnvOrDefault("BSRESHAPE_FILE", DefaultFile),
		PlanPath:    os.Getenv("BSRESHAPE_PLAN"),
		HistoryDB:   os.Getenv("BSRESHAPE_HISTORY_DB"),
		ExportPath:  os.Getenv("BSRESHAPE_EXPORT"),
		PruneFile:   getEnvOrDefault("BSRESHAPE_PRUNE_FILE", DefaultPruneFile),
		PrunePrefix: getEnvOrDefault("BSRESHAPE_PRUNE_PREFIX", DefaultPrunePrefix),
		Debug:       strings.EqualFold(os.Getenv("DEBUG"), "true"),
	}, nil
}

// Validate checks that the configured paths are usable.
func (c *Config) Validate() error {
	var problems []string

	if c.File == "" {
		problems = append(problems, "file is not set (BSRESHAPE_FILE)")
	} else if ft := bsreshape.DetectFileType(c.File); ft == bsreshape.Unsupported ||
		bsreshape.BaseFileType(ft) == bsreshape.XLSX || bsreshape.BaseFileType(ft) == bsreshape.Parquet {
		problems = append(problems, fmt.Sprintf("file %s is not a CSV or TSV sheet", c.File))
	}

	if c.ExportPath != "" {
		if ft := bsreshape.DetectFileType(c.ExportPath); ft != bsreshape.XLSX && ft != bsreshape.Parquet {
			problems = append(problems, fmt.Sprintf("export %s must end in .xlsx or .parquet", c.ExportPath))
		}
		if dir := filepath.Dir(c.ExportPath); !isDir(dir) {
			problems = append(problems, fmt.Sprintf("export directory %s does not exist", dir))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s\nPlease check your .env file, environment variables or flags", strings.Join(problems, "; "))
	}
	return nil
}

// ValidatePrune checks the settings used by the prune command.
func (c *Config) ValidatePrune() error {
	var problems []string

	if c.PruneFile == "" {
		problems = append(problems, "prune file is not set (BSRESHAPE_PRUNE_FILE)")
	} else if base := bsreshape.BaseFileType(bsreshape.DetectFileType(c.PruneFile)); base != bsreshape.CSV && base != bsreshape.TSV {
		problems = append(problems, fmt.Sprintf("prune file %s is not a CSV or TSV sheet", c.PruneFile))
	}
	if c.PrunePrefix == "" {
		problems = append(problems, "prune prefix is not set (BSRESHAPE_PRUNE_PREFIX)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s\nPlease check your .env file, environment variables or flags", strings.Join(problems, "; "))
	}
	return nil
}

// Plan is the YAML representation of a layout and recipe override.
//
//	layout:
//	  secondary_end: 40
//	steps:
//	  - label: 현금
//	    strategy: copy
//	    sources: [현금]
type Plan struct {
	Layout bsreshape.Layout `yaml:"layout"`
	Steps  []bsreshape.Step `yaml:"steps"`
}

// LoadPlan returns the layout and recipe to run with.
// An empty path yields the defaults. Layout keys missing from the file keep
// their default values; a file without steps keeps the default recipe.
func LoadPlan(path string) (bsreshape.Layout, bsreshape.Recipe, error) {
	layout := bsreshape.DefaultLayout()
	recipe := bsreshape.DefaultRecipe()
	if path == "" {
		return layout, recipe, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return bsreshape.Layout{}, bsreshape.Recipe{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes a YAML plan on top of the defaults.
func ParsePlan(data []byte) (bsreshape.Layout, bsreshape.Recipe, error) {
	plan := Plan{Layout: bsreshape.DefaultLayout()}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return bsreshape.Layout{}, bsreshape.Recipe{}, fmt.Errorf("failed to parse plan: %w", err)
	}

	recipe := bsreshape.DefaultRecipe()
	if len(plan.Steps) > 0 {
		recipe = bsreshape.Recipe{Steps: plan.Steps}
	}

	if err := plan.Layout.Validate(); err != nil {
		return bsreshape.Layout{}, bsreshape.Recipe{}, fmt.Errorf("invalid plan layout: %w", err)
	}
	if err := recipe.Validate(); err != nil {
		return bsreshape.Layout{}, bsreshape.Recipe{}, fmt.Errorf("invalid plan recipe: %w", err)
	}
	return plan.Layout, recipe, nil
}

// MarshalPlan renders layout and recipe as YAML, for use as a starting point
// of a custom plan.
func MarshalPlan(layout bsreshape.Layout, recipe bsreshape.Recipe) ([]byte, error) {
	if len(recipe.Steps) == 0 {
		return nil, errors.New("recipe has no steps")
	}
	return yaml.Marshal(Plan{Layout: layout, Steps: recipe.Steps})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
