package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evalforge/evalharness/internal/config"
	"github.com/evalforge/evalharness/internal/dq"
	"github.com/evalforge/evalharness/internal/report"
	"github.com/evalforge/evalharness/internal/runner"
	"github.com/evalforge/evalharness/internal/sample"
	"github.com/evalforge/evalharness/internal/score"
	"github.com/evalforge/evalharness/internal/tables"
	"github.com/evalforge/evalharness/pkg/schema"
)

type cliError struct {
	code int
	err  error
}

func (e cliError) Error() string { return e.err.Error() }

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var ce cliError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.err)
			os.Exit(ce.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "evalharness",
		Short: "LLM evaluation harness with a data-quality gate",
	}
	root.AddCommand(newInitCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newScoreCommand())
	root.AddCommand(newSampleCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newReportCommand())
	return root
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize evalharness configuration and data directories",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !fileExists(config.DefaultPath) {
				if err := os.WriteFile(config.DefaultPath, []byte(defaultConfigYAML), 0o644); err != nil {
					return err
				}
			}
			for _, dir := range []string{"data", "reports"} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			fmt.Println("initialized evalharness config and directories")
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evaluation sweep and write the runs table",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			prompts, err := tables.LoadPrompts(cfg.Data.Prompts)
			if err != nil {
				return err
			}
			client := runner.NewClient(cfg.Run.BaseURL,
				time.Duration(cfg.Run.TimeoutSeconds)*time.Second)
			written, err := runner.New(client, logger).Run(context.Background(), prompts, runner.Options{
				Models:               cfg.Run.Models,
				SystemPromptVersions: cfg.Run.SystemPromptVersions,
				Temperature:          cfg.Run.Temperature,
				PromptLimit:          cfg.Run.PromptLimit,
				Pause:                time.Duration(cfg.Run.PauseMS) * time.Millisecond,
			}, cfg.Data.Runs)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %d runs to %s\n", written, cfg.Data.Runs)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	return cmd
}

func newScoreCommand() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Auto-score runs with the rule-based heuristics",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			prompts, err := tables.LoadPrompts(cfg.Data.Prompts)
			if err != nil {
				return err
			}
			runs, err := tables.LoadRuns(cfg.Data.Runs)
			if err != nil {
				return err
			}

			scores := score.NewScorer(logger).Score(prompts, runs)
			if err := score.WriteScores(cfg.Data.AutoScores, scores); err != nil {
				return err
			}

			sum := score.Summarize(scores)
			fmt.Printf("scored %d runs -> %s\n", sum.Total, cfg.Data.AutoScores)
			for _, metric := range []string{
				"format_followed", "refusal_present", "refusal_correct",
				"mentions_uncertainty", "contains_policy_risk_flag", "citations_present",
			} {
				fmt.Printf("  %s: %s\n", metric, sum.Format(metric))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	return cmd
}

func newSampleCommand() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw the stratified human-rating sample and write the template",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger()
			defer logger.Sync()

			prompts, err := tables.LoadPrompts(cfg.Data.Prompts)
			if err != nil {
				return err
			}
			runs, err := tables.LoadRuns(cfg.Data.Runs)
			if err != nil {
				return err
			}

			sampled := sample.Stratified(prompts, runs, sample.Options{
				TargetSize: cfg.Sample.TargetSize,
				PerCohort:  cfg.Sample.PerCohort,
				Seed:       cfg.Sample.Seed,
			})
			if err := sample.WriteTemplate(cfg.Data.HumanRatings, sampled); err != nil {
				return err
			}
			logger.Info("sample batch written",
				zap.String("batch_id", uuid.NewString()),
				zap.Int("size", len(sampled)),
				zap.String("path", cfg.Data.HumanRatings))

			fmt.Printf("sampled %d runs for human rating\n", len(sampled))
			fmt.Printf("%-24s %-10s %-16s %s\n", "model", "version", "category", "count")
			for _, c := range sample.Breakdown(prompts, sampled) {
				fmt.Printf("%-24s %-10s %-16s %d\n",
					c.Cohort.Model, c.Cohort.Version, c.Cohort.Category, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	return cmd
}

func newValidateCommand() *cobra.Command {
	var cfgPath, source, dbPath, outDir, schemaDir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the data-quality checks and persist the report",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return cliError{code: dq.ExitSchemaError, err: err}
			}
			if schemaPath := filepath.Join(schemaDir, "config.schema.json"); fileExists(schemaPath) {
				violations, err := config.ValidateDocument(cfgPath, schemaPath)
				if err != nil {
					return cliError{code: dq.ExitSchemaError, err: err}
				}
				if len(violations) > 0 {
					return cliError{
						code: dq.ExitSchemaError,
						err:  fmt.Errorf("config schema invalid: %s", strings.Join(violations, "; ")),
					}
				}
			}

			var ds *tables.Dataset
			switch source {
			case "csv":
				ds, err = tables.LoadCSV(cfg.TablePaths())
			case "sqlite":
				if dbPath == "" {
					return fmt.Errorf("--db is required for --source sqlite")
				}
				ds, err = tables.LoadSQLite(dbPath)
			default:
				return fmt.Errorf("unsupported source %s", source)
			}
			if err != nil {
				var se *tables.SchemaError
				if errors.As(err, &se) {
					return cliError{code: dq.ExitSchemaError, err: err}
				}
				return err
			}

			dqCfg, err := cfg.DQConfig()
			if err != nil {
				return cliError{code: dq.ExitSchemaError, err: err}
			}
			dqCfg.Now = time.Now().UTC()

			r := dq.Run(ds, dqCfg)
			r.ReportID = uuid.NewString()
			r.GeneratedAt = dqCfg.Now.Format(time.RFC3339)

			report.WriteSummary(os.Stdout, r)

			if outDir == "" {
				outDir = cfg.Validate.ReportDir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if err := report.WriteCSV(filepath.Join(outDir, "dq_report.csv"), r); err != nil {
				return err
			}
			if err := report.WriteJSON(filepath.Join(outDir, "dq_report.json"), r); err != nil {
				return err
			}

			if !r.Passed {
				return cliError{code: r.ExitCode, err: fmt.Errorf("data quality validation failed")}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", config.DefaultPath, "config file path")
	cmd.Flags().StringVar(&source, "source", "csv", "dataset source (csv|sqlite)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (with --source sqlite)")
	cmd.Flags().StringVar(&outDir, "out", "", "report output directory (default from config)")
	cmd.Flags().StringVar(&schemaDir, "schema-dir", "schemas/v1", "schema directory")
	return cmd
}

func newReportCommand() *cobra.Command {
	var inPath, outPath, schemaDir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown report from persisted report JSON",
		RunE: func(_ *cobra.Command, _ []string) error {
			if schemaPath := filepath.Join(schemaDir, "report.schema.json"); fileExists(schemaPath) {
				violations, err := schema.ValidateJSONFile(schemaPath, inPath)
				if err != nil {
					return err
				}
				if len(violations) > 0 {
					return fmt.Errorf("report schema invalid: %s", strings.Join(violations, "; "))
				}
			}
			r, err := report.ReadJSON(inPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".md"
			}
			if err := report.WriteMarkdown(outPath, r); err != nil {
				return err
			}
			fmt.Println(outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "reports/dq_report.json", "report JSON input")
	cmd.Flags().StringVar(&outPath, "out", "", "markdown output path")
	cmd.Flags().StringVar(&schemaDir, "schema-dir", "schemas/v1", "schema directory")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

const defaultConfigYAML = `data:
  prompts: data/prompts.csv
  runs: data/runs.csv
  auto_scores: data/auto_scores.csv
  human_ratings: data/human_ratings.csv
validate:
  project_start: "2025-01-01T00:00:00Z"
  report_dir: reports
sample:
  target_size: 100
  per_cohort: 8
  seed: 42
run:
  base_url: http://localhost:11434
  models:
    - llama3.2:latest
    - qwen2.5:latest
  system_prompt_versions:
    - v2
  temperature: 0.7
  prompt_limit: 0
  timeout_seconds: 120
  pause_ms: 200
`
