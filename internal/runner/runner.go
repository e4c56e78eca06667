// Package runner executes the evaluation sweep: every configured model and
// system-prompt version against every prompt in the catalog, recording one
// run row per completion.
package runner

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/evalforge/evalharness/internal/tables"
)

// System prompt templates keyed by version. v2 adds the uncertainty and
// citation instructions the auto-scorer looks for.
var systemPrompts = map[string]string{
	"v1": "You are a helpful AI assistant. Provide accurate, clear, and concise responses.",
	"v2": "You are a helpful AI assistant. Provide accurate, clear, and concise responses. " +
		"When uncertain, acknowledge limitations. Cite sources when making factual claims.",
}

// Options configure one evaluation sweep.
type Options struct {
	Models               []string
	SystemPromptVersions []string
	Temperature          float64
	// PromptLimit caps the sweep to the first N prompts; zero means all.
	PromptLimit int
	// Pause between requests, to avoid overwhelming the model server.
	Pause time.Duration
}

type Runner struct {
	client *Client
	logger *zap.Logger
}

func New(client *Client, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{client: client, logger: logger}
}

// Run sweeps the configured model/version grid over the prompt catalog and
// appends completed runs to outPath. Failed completions are logged and
// skipped; their run_id is still consumed so ids stay aligned with the sweep
// position. Returns the number of runs written.
func (r *Runner) Run(ctx context.Context, prompts []tables.Prompt, opts Options, outPath string) (int, error) {
	for _, version := range opts.SystemPromptVersions {
		if _, ok := systemPrompts[version]; !ok {
			return 0, fmt.Errorf("unknown system prompt version %q", version)
		}
	}

	sweep := prompts
	if opts.PromptLimit > 0 && opts.PromptLimit < len(sweep) {
		sweep = sweep[:opts.PromptLimit]
	}

	writer, err := NewRunWriter(outPath)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	total := len(sweep) * len(opts.Models) * len(opts.SystemPromptVersions)
	r.logger.Info("starting evaluation sweep",
		zap.Int("prompts", len(sweep)),
		zap.Strings("models", opts.Models),
		zap.Strings("versions", opts.SystemPromptVersions),
		zap.Int("total_combinations", total))

	runID := 1
	written := 0
	for _, model := range opts.Models {
		for _, version := range opts.SystemPromptVersions {
			system := systemPrompts[version]
			for _, prompt := range sweep {
				if err := ctx.Err(); err != nil {
					return written, err
				}

				output, latency, err := r.client.Generate(ctx, model, prompt.PromptText, system, opts.Temperature)
				if err != nil {
					r.logger.Error("generation failed",
						zap.String("model", model),
						zap.String("prompt_id", prompt.PromptID),
						zap.Error(err))
					runID++
					continue
				}

				run := tables.Run{
					RunID:               strconv.Itoa(runID),
					PromptID:            prompt.PromptID,
					ModelName:           model,
					SystemPromptVersion: version,
					Temperature:         opts.Temperature,
					Timestamp:           time.Now().UTC().Format(time.RFC3339),
					LatencyMS:           latency.Milliseconds(),
					OutputLenChars:      int64(utf8.RuneCountInString(output)),
					OutputText:          output,
				}
				if err := writer.Write(run); err != nil {
					return written, fmt.Errorf("write run %s: %w", run.RunID, err)
				}
				written++
				r.logger.Info("run complete",
					zap.String("run_id", run.RunID),
					zap.String("model", model),
					zap.Int64("latency_ms", run.LatencyMS),
					zap.Int64("output_chars", run.OutputLenChars))

				runID++
				if opts.Pause > 0 {
					time.Sleep(opts.Pause)
				}
			}
		}
	}

	r.logger.Info("evaluation sweep finished",
		zap.Int("written", written),
		zap.Int("attempted", total))
	return written, nil
}
