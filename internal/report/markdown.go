package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/evalforge/evalharness/internal/dq"
)

func BuildMarkdown(r dq.Report) string {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	var b strings.Builder
	b.WriteString("# Data Quality Report\n\n")
	if r.ReportID != "" {
		b.WriteString(fmt.Sprintf("- Report ID: `%s`\n", r.ReportID))
	}
	if r.GeneratedAt != "" {
		b.WriteString(fmt.Sprintf("- Generated At: `%s`\n", r.GeneratedAt))
	}
	b.WriteString(fmt.Sprintf("- Status: **%s**\n", status))
	b.WriteString(fmt.Sprintf("- Exit Code: `%d`\n", r.ExitCode))
	b.WriteString(fmt.Sprintf("- Runs Validated: `%d`\n\n", r.RunCount))

	b.WriteString("## Checks\n\n")
	b.WriteString("| Check | Status | Affected | Notes |\n")
	b.WriteString("|---|---|---:|---|\n")
	for _, c := range r.Checks {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n",
			c.Name, strings.ToUpper(string(c.Status)), c.RecordsAffected,
			strings.ReplaceAll(c.Notes, "|", "\\|")))
	}

	if len(r.Failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, f := range r.Failures {
			b.WriteString("- " + f + "\n")
		}
	}

	return b.String()
}

func WriteMarkdown(path string, r dq.Report) error {
	return os.WriteFile(path, []byte(BuildMarkdown(r)), 0o644)
}
