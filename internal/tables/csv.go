package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// readTable reads a delimited file, validates its header against the required
// column set, and hands each record to build keyed by column name. Any read or
// parse problem is wrapped in a *SchemaError for the fatal tier.
func readTable(path, table string, required []string, build func(row func(string) string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &SchemaError{Table: table, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return &SchemaError{Table: table, Err: fmt.Errorf("empty file %s", path)}
		}
		return &SchemaError{Table: table, Err: err}
	}
	idx, err := columnIndex(table, header, required)
	if err != nil {
		return err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &SchemaError{Table: table, Err: err}
		}
		row := func(col string) string {
			i := idx[col]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := build(row); err != nil {
			return &SchemaError{Table: table, Err: err}
		}
	}
	return nil
}

// LoadPrompts reads the prompt catalog from a CSV file.
func LoadPrompts(path string) ([]Prompt, error) {
	prompts := make([]Prompt, 0)
	err := readTable(path, "prompts", promptColumns, func(row func(string) string) error {
		prompts = append(prompts, Prompt{
			PromptID:       row("prompt_id"),
			Category:       row("category"),
			Difficulty:     row("difficulty"),
			ShouldRefuse:   row("should_refuse"),
			ExpectedFormat: row("expected_format"),
			PromptText:     row("prompt_text"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// LoadRuns reads the run log from a CSV file. latency_ms, output_len_chars and
// temperature must parse; value-domain problems in other columns are left for
// the checks.
func LoadRuns(path string) ([]Run, error) {
	runs := make([]Run, 0)
	err := readTable(path, "runs", runColumns, func(row func(string) string) error {
		latency, err := strconv.ParseInt(row("latency_ms"), 10, 64)
		if err != nil {
			return fmt.Errorf("run %s: latency_ms %q: %w", row("run_id"), row("latency_ms"), err)
		}
		outputLen, err := strconv.ParseInt(row("output_len_chars"), 10, 64)
		if err != nil {
			return fmt.Errorf("run %s: output_len_chars %q: %w", row("run_id"), row("output_len_chars"), err)
		}
		temperature, err := strconv.ParseFloat(row("temperature"), 64)
		if err != nil {
			return fmt.Errorf("run %s: temperature %q: %w", row("run_id"), row("temperature"), err)
		}
		runs = append(runs, Run{
			RunID:               row("run_id"),
			PromptID:            row("prompt_id"),
			ModelName:           row("model_name"),
			SystemPromptVersion: row("system_prompt_version"),
			Temperature:         temperature,
			Timestamp:           row("timestamp"),
			LatencyMS:           latency,
			OutputLenChars:      outputLen,
			OutputText:          row("output_text"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// LoadAutoScores reads the auto-score table from a CSV file.
func LoadAutoScores(path string) ([]AutoScore, error) {
	scores := make([]AutoScore, 0)
	err := readTable(path, "auto_scores", autoScoreColumns, func(row func(string) string) error {
		scores = append(scores, AutoScore{
			RunID:                  row("run_id"),
			FormatFollowed:         row("format_followed"),
			RefusalPresent:         row("refusal_present"),
			RefusalCorrect:         row("refusal_correct"),
			MentionsUncertainty:    row("mentions_uncertainty"),
			ContainsPolicyRiskFlag: row("contains_policy_risk_flag"),
			CitationsPresent:       row("citations_present"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// LoadHumanRatings reads the human-rating table from a CSV file.
func LoadHumanRatings(path string) ([]HumanRating, error) {
	ratings := make([]HumanRating, 0)
	err := readTable(path, "human_ratings", humanRatingColumns, func(row func(string) string) error {
		ratings = append(ratings, HumanRating{
			RunID:             row("run_id"),
			Helpfulness:       row("helpfulness_1_5"),
			Correctness:       row("correctness_1_5"),
			Clarity:           row("clarity_1_5"),
			Compliance:        row("compliance_1_5"),
			HallucinationFlag: row("hallucination_flag"),
			Notes:             row("notes"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// LoadCSV loads the full four-table snapshot from delimited files.
func LoadCSV(paths Paths) (*Dataset, error) {
	prompts, err := LoadPrompts(paths.Prompts)
	if err != nil {
		return nil, err
	}
	runs, err := LoadRuns(paths.Runs)
	if err != nil {
		return nil, err
	}
	scores, err := LoadAutoScores(paths.AutoScores)
	if err != nil {
		return nil, err
	}
	ratings, err := LoadHumanRatings(paths.HumanRatings)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Prompts:      prompts,
		Runs:         runs,
		AutoScores:   scores,
		HumanRatings: ratings,
	}, nil
}
