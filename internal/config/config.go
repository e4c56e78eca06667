// Package config loads the harness configuration document shared by all
// pipeline steps.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/evalforge/evalharness/internal/dq"
	"github.com/evalforge/evalharness/internal/tables"
	"github.com/evalforge/evalharness/pkg/schema"
)

// DefaultPath is where the CLI looks for the config document.
const DefaultPath = "evalharness.yaml"

type Config struct {
	Data     DataConfig     `yaml:"data"`
	Validate ValidateConfig `yaml:"validate"`
	Sample   SampleConfig   `yaml:"sample"`
	Run      RunConfig      `yaml:"run"`
}

// DataConfig names the four table files.
type DataConfig struct {
	Prompts      string `yaml:"prompts"`
	Runs         string `yaml:"runs"`
	AutoScores   string `yaml:"auto_scores"`
	HumanRatings string `yaml:"human_ratings"`
}

// ValidateConfig carries the DQ gate boundaries.
type ValidateConfig struct {
	ProjectStart        string  `yaml:"project_start"`
	ReportDir           string  `yaml:"report_dir"`
	OutlierMultiplier   float64 `yaml:"outlier_multiplier"`
	OutlierFailFraction float64 `yaml:"outlier_fail_fraction"`
	MinRatingsPerCohort int     `yaml:"min_ratings_per_cohort"`
	TotalRatingsMin     int     `yaml:"total_ratings_min"`
	TotalRatingsMax     int     `yaml:"total_ratings_max"`
}

type SampleConfig struct {
	TargetSize int   `yaml:"target_size"`
	PerCohort  int   `yaml:"per_cohort"`
	Seed       int64 `yaml:"seed"`
}

type RunConfig struct {
	BaseURL              string   `yaml:"base_url"`
	Models               []string `yaml:"models"`
	SystemPromptVersions []string `yaml:"system_prompt_versions"`
	Temperature          float64  `yaml:"temperature"`
	PromptLimit          int      `yaml:"prompt_limit"`
	TimeoutSeconds       int      `yaml:"timeout_seconds"`
	PauseMS              int      `yaml:"pause_ms"`
}

// Default returns the configuration the init command writes.
func Default() Config {
	return Config{
		Data: DataConfig{
			Prompts:      "data/prompts.csv",
			Runs:         "data/runs.csv",
			AutoScores:   "data/auto_scores.csv",
			HumanRatings: "data/human_ratings.csv",
		},
		Validate: ValidateConfig{
			ProjectStart: "2025-01-01T00:00:00Z",
			ReportDir:    "reports",
		},
		Sample: SampleConfig{
			TargetSize: 100,
			PerCohort:  8,
			Seed:       42,
		},
		Run: RunConfig{
			BaseURL:              "http://localhost:11434",
			Models:               []string{"llama3.2:latest", "qwen2.5:latest"},
			SystemPromptVersions: []string{"v2"},
			Temperature:          0.7,
			TimeoutSeconds:       120,
			PauseMS:              200,
		},
	}
}

// Load reads and parses the config document, layered over defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ValidateDocument checks the config document against its JSON schema and
// returns any violations.
func ValidateDocument(path, schemaPath string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return schema.Validate(schemaPath, doc)
}

// TablePaths maps the data section onto the loader's path set.
func (c Config) TablePaths() tables.Paths {
	return tables.Paths{
		Prompts:      c.Data.Prompts,
		Runs:         c.Data.Runs,
		AutoScores:   c.Data.AutoScores,
		HumanRatings: c.Data.HumanRatings,
	}
}

// DQConfig builds the check configuration from the validate section. Now is
// left zero for the engine to fill at evaluation time.
func (c Config) DQConfig() (dq.Config, error) {
	out := dq.DefaultConfig()
	if c.Validate.ProjectStart != "" {
		start, err := time.Parse(time.RFC3339, c.Validate.ProjectStart)
		if err != nil {
			return out, fmt.Errorf("validate.project_start %q: %w", c.Validate.ProjectStart, err)
		}
		out.ProjectStart = start.UTC()
	}
	if c.Validate.OutlierMultiplier > 0 {
		out.OutlierMultiplier = c.Validate.OutlierMultiplier
	}
	if c.Validate.OutlierFailFraction > 0 {
		out.OutlierFailFraction = c.Validate.OutlierFailFraction
	}
	if c.Validate.MinRatingsPerCohort > 0 {
		out.MinRatingsPerCohort = c.Validate.MinRatingsPerCohort
	}
	if c.Validate.TotalRatingsMin > 0 {
		out.TotalRatingsMin = c.Validate.TotalRatingsMin
	}
	if c.Validate.TotalRatingsMax > 0 {
		out.TotalRatingsMax = c.Validate.TotalRatingsMax
	}
	return out, nil
}
