package tables

// Prompt is one row of the prompt catalog. Prompts are authored once and
// immutable for the lifetime of an evaluation campaign.
type Prompt struct {
	PromptID       string
	Category       string
	Difficulty     string
	ShouldRefuse   string
	ExpectedFormat string
	PromptText     string
}

// Run is one execution of a prompt against a model under a specific
// configuration. Timestamp and OutputText are carried raw: the DQ checks own
// their validation, so malformed values must survive loading.
type Run struct {
	RunID               string
	PromptID            string
	ModelName           string
	SystemPromptVersion string
	Temperature         float64
	Timestamp           string
	LatencyMS           int64
	OutputLenChars      int64
	OutputText          string
}

// AutoScore is the rule-based score row for a run. The six metric columns are
// raw strings constrained to "0"/"1"; out-of-domain cells are counted by the
// auto_score_ranges check rather than rejected at load time.
type AutoScore struct {
	RunID                  string
	FormatFollowed         string
	RefusalPresent         string
	RefusalCorrect         string
	MentionsUncertainty    string
	ContainsPolicyRiskFlag string
	CitationsPresent       string
}

// HumanRating is a manually assigned rating for a sampled run. Rating columns
// are raw strings in "1".."5" or empty (unrated), the hallucination flag is
// "0"/"1" or empty.
type HumanRating struct {
	RunID             string
	Helpfulness       string
	Correctness       string
	Clarity           string
	Compliance        string
	HallucinationFlag string
	Notes             string
}

// Cell pairs a column name with its raw value, for checks that sweep a fixed
// set of columns per row.
type Cell struct {
	Column string
	Value  string
}

// MetricCells returns the six boolean-valued score columns in schema order.
func (s AutoScore) MetricCells() []Cell {
	return []Cell{
		{"format_followed", s.FormatFollowed},
		{"refusal_present", s.RefusalPresent},
		{"refusal_correct", s.RefusalCorrect},
		{"mentions_uncertainty", s.MentionsUncertainty},
		{"contains_policy_risk_flag", s.ContainsPolicyRiskFlag},
		{"citations_present", s.CitationsPresent},
	}
}

// OrdinalCells returns the four 1-5 rating columns in schema order.
func (r HumanRating) OrdinalCells() []Cell {
	return []Cell{
		{"helpfulness_1_5", r.Helpfulness},
		{"correctness_1_5", r.Correctness},
		{"clarity_1_5", r.Clarity},
		{"compliance_1_5", r.Compliance},
	}
}

// Dataset is the immutable four-table snapshot a validation run operates on.
type Dataset struct {
	Prompts      []Prompt
	Runs         []Run
	AutoScores   []AutoScore
	HumanRatings []HumanRating
}

// Paths names the four delimited source files of a dataset.
type Paths struct {
	Prompts      string
	Runs         string
	AutoScores   string
	HumanRatings string
}
