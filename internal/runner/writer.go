package runner

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/evalforge/evalharness/internal/tables"
)

// RunWriter appends run rows to a CSV file, flushing after every write so a
// crashed evaluation session keeps the runs it already completed.
type RunWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewRunWriter creates the runs file, overwriting any previous one, and
// writes the header row.
func NewRunWriter(path string) (*RunWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{
		"run_id", "prompt_id", "model_name", "system_prompt_version",
		"temperature", "timestamp", "latency_ms", "output_len_chars", "output_text",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	return &RunWriter{file: f, writer: w}, nil
}

// Write appends a single run row. It is safe for concurrent use.
func (rw *RunWriter) Write(r tables.Run) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	record := []string{
		r.RunID,
		r.PromptID,
		r.ModelName,
		r.SystemPromptVersion,
		fmt.Sprintf("%g", r.Temperature),
		r.Timestamp,
		fmt.Sprintf("%d", r.LatencyMS),
		fmt.Sprintf("%d", r.OutputLenChars),
		r.OutputText,
	}
	if err := rw.writer.Write(record); err != nil {
		return err
	}
	rw.writer.Flush()
	return rw.writer.Error()
}

func (rw *RunWriter) Close() error {
	rw.writer.Flush()
	return rw.file.Close()
}
