package tables

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// LoadSQLite loads the four-table snapshot from a SQLite database holding the
// same column contract as the delimited files (tables prompts, runs,
// auto_scores, human_ratings). NULL cells map to the empty string so the
// value-domain checks see the same absent marker as with CSV input.
func LoadSQLite(dbPath string) (*Dataset, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &SchemaError{Table: "sqlite", Err: fmt.Errorf("open database: %w", err)}
	}
	defer db.Close()

	ds := &Dataset{}
	if ds.Prompts, err = loadPromptsSQL(db); err != nil {
		return nil, err
	}
	if ds.Runs, err = loadRunsSQL(db); err != nil {
		return nil, err
	}
	if ds.AutoScores, err = loadAutoScoresSQL(db); err != nil {
		return nil, err
	}
	if ds.HumanRatings, err = loadHumanRatingsSQL(db); err != nil {
		return nil, err
	}
	return ds, nil
}

func loadPromptsSQL(db *sql.DB) ([]Prompt, error) {
	rows, err := db.Query(`SELECT prompt_id, category, difficulty, should_refuse,
		expected_format, prompt_text FROM prompts`)
	if err != nil {
		return nil, &SchemaError{Table: "prompts", Err: err}
	}
	defer rows.Close()

	prompts := make([]Prompt, 0)
	for rows.Next() {
		var id, category, difficulty, refuse, format, text sql.NullString
		if err := rows.Scan(&id, &category, &difficulty, &refuse, &format, &text); err != nil {
			return nil, &SchemaError{Table: "prompts", Err: err}
		}
		prompts = append(prompts, Prompt{
			PromptID:       id.String,
			Category:       category.String,
			Difficulty:     difficulty.String,
			ShouldRefuse:   refuse.String,
			ExpectedFormat: format.String,
			PromptText:     text.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &SchemaError{Table: "prompts", Err: err}
	}
	return prompts, nil
}

func loadRunsSQL(db *sql.DB) ([]Run, error) {
	rows, err := db.Query(`SELECT run_id, prompt_id, model_name, system_prompt_version,
		temperature, timestamp, latency_ms, output_len_chars, output_text FROM runs`)
	if err != nil {
		return nil, &SchemaError{Table: "runs", Err: err}
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var runID, promptID, model, version, timestamp, output sql.NullString
		var temperature sql.NullFloat64
		var latency, outputLen sql.NullInt64
		if err := rows.Scan(&runID, &promptID, &model, &version, &temperature,
			&timestamp, &latency, &outputLen, &output); err != nil {
			return nil, &SchemaError{Table: "runs", Err: err}
		}
		runs = append(runs, Run{
			RunID:               runID.String,
			PromptID:            promptID.String,
			ModelName:           model.String,
			SystemPromptVersion: version.String,
			Temperature:         temperature.Float64,
			Timestamp:           timestamp.String,
			LatencyMS:           latency.Int64,
			OutputLenChars:      outputLen.Int64,
			OutputText:          output.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &SchemaError{Table: "runs", Err: err}
	}
	return runs, nil
}

func loadAutoScoresSQL(db *sql.DB) ([]AutoScore, error) {
	rows, err := db.Query(`SELECT run_id, format_followed, refusal_present, refusal_correct,
		mentions_uncertainty, contains_policy_risk_flag, citations_present FROM auto_scores`)
	if err != nil {
		return nil, &SchemaError{Table: "auto_scores", Err: err}
	}
	defer rows.Close()

	scores := make([]AutoScore, 0)
	for rows.Next() {
		cells := make([]sql.NullString, 7)
		dest := make([]any, 7)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &SchemaError{Table: "auto_scores", Err: err}
		}
		scores = append(scores, AutoScore{
			RunID:                  cells[0].String,
			FormatFollowed:         cells[1].String,
			RefusalPresent:         cells[2].String,
			RefusalCorrect:         cells[3].String,
			MentionsUncertainty:    cells[4].String,
			ContainsPolicyRiskFlag: cells[5].String,
			CitationsPresent:       cells[6].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &SchemaError{Table: "auto_scores", Err: err}
	}
	return scores, nil
}

func loadHumanRatingsSQL(db *sql.DB) ([]HumanRating, error) {
	rows, err := db.Query(`SELECT run_id, helpfulness_1_5, correctness_1_5, clarity_1_5,
		compliance_1_5, hallucination_flag, notes FROM human_ratings`)
	if err != nil {
		return nil, &SchemaError{Table: "human_ratings", Err: err}
	}
	defer rows.Close()

	ratings := make([]HumanRating, 0)
	for rows.Next() {
		cells := make([]sql.NullString, 7)
		dest := make([]any, 7)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &SchemaError{Table: "human_ratings", Err: err}
		}
		ratings = append(ratings, HumanRating{
			RunID:             cells[0].String,
			Helpfulness:       cells[1].String,
			Correctness:       cells[2].String,
			Clarity:           cells[3].String,
			Compliance:        cells[4].String,
			HallucinationFlag: cells[5].String,
			Notes:             cells[6].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &SchemaError{Table: "human_ratings", Err: err}
	}
	return ratings, nil
}
