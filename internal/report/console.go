package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/evalforge/evalharness/internal/dq"
)

// WriteSummary prints the one-line-per-check console summary in canonical
// order: `check_name: PASS|FAIL (affected=<count>)`.
func WriteSummary(w io.Writer, r dq.Report) {
	for _, c := range r.Checks {
		fmt.Fprintf(w, "%s: %s (affected=%d)\n", c.Name, strings.ToUpper(string(c.Status)), c.RecordsAffected)
	}
}
