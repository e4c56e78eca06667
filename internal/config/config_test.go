package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const schemaPath = "../../schemas/v1/config.schema.json"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evalharness.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  prompts: custom/prompts.csv
validate:
  project_start: "2026-01-01T00:00:00Z"
sample:
  seed: 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Prompts != "custom/prompts.csv" {
		t.Errorf("prompts = %s", cfg.Data.Prompts)
	}
	// untouched sections keep their defaults
	if cfg.Data.Runs != "data/runs.csv" {
		t.Errorf("runs = %s, want default", cfg.Data.Runs)
	}
	if cfg.Sample.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Sample.Seed)
	}
	if cfg.Sample.TargetSize != 100 {
		t.Errorf("target_size = %d, want default 100", cfg.Sample.TargetSize)
	}
	if cfg.Run.BaseURL != "http://localhost:11434" {
		t.Errorf("base_url = %s, want default", cfg.Run.BaseURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "data: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestDQConfig(t *testing.T) {
	cfg := Default()
	cfg.Validate.ProjectStart = "2026-01-01T00:00:00Z"
	cfg.Validate.OutlierMultiplier = 5
	cfg.Validate.MinRatingsPerCohort = 4

	dqCfg, err := cfg.DQConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !dqCfg.ProjectStart.Equal(want) {
		t.Errorf("project start = %v, want %v", dqCfg.ProjectStart, want)
	}
	if dqCfg.OutlierMultiplier != 5 {
		t.Errorf("multiplier = %v, want 5", dqCfg.OutlierMultiplier)
	}
	if dqCfg.MinRatingsPerCohort != 4 {
		t.Errorf("min per cohort = %d, want 4", dqCfg.MinRatingsPerCohort)
	}
	// unset thresholds keep their defaults
	if dqCfg.OutlierFailFraction != 0.01 {
		t.Errorf("fail fraction = %v, want 0.01", dqCfg.OutlierFailFraction)
	}
	if dqCfg.TotalRatingsMin != 80 || dqCfg.TotalRatingsMax != 120 {
		t.Errorf("band = [%d, %d], want [80, 120]", dqCfg.TotalRatingsMin, dqCfg.TotalRatingsMax)
	}
	if !dqCfg.Now.IsZero() {
		t.Errorf("Now = %v, want zero for the caller to fill", dqCfg.Now)
	}
}

func TestDQConfigBadProjectStart(t *testing.T) {
	cfg := Default()
	cfg.Validate.ProjectStart = "January 2026"
	if _, err := cfg.DQConfig(); err == nil {
		t.Error("expected error for unparseable project_start")
	}
}

func TestTablePaths(t *testing.T) {
	cfg := Default()
	paths := cfg.TablePaths()
	if paths.Prompts != cfg.Data.Prompts || paths.HumanRatings != cfg.Data.HumanRatings {
		t.Errorf("paths = %+v", paths)
	}
}

func TestValidateDocument(t *testing.T) {
	good := writeConfig(t, `
data:
  prompts: data/prompts.csv
run:
  models:
    - llama3.2:latest
  system_prompt_versions:
    - v2
`)
	violations, err := ValidateDocument(good, schemaPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %v, want none", violations)
	}

	bad := writeConfig(t, `
run:
  system_prompt_versions:
    - v99
unknown_section:
  x: 1
`)
	violations, err = ValidateDocument(bad, schemaPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) == 0 {
		t.Error("expected schema violations for v99 and unknown_section")
	}
}
