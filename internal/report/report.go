// Package report renders compliance reports for human inspection.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/workshopforge/workshopforge/internal/policy"
)

// Report file names within the reports directory.
const (
	MarkdownFile = "compliance.md"
	JSONFile     = "compliance.json"
)

// Writer regenerates the compliance report on every check and apply.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Dir returns the reports directory.
func (w *Writer) Dir() string { return w.dir }

// Write renders the violation set, grouped by severity, as Markdown and
// JSON. Earlier reports are overwritten: the report reflects the current
// state, the audit log holds history.
func (w *Writer) Write(violations []policy.Violation) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	md := w.renderMarkdown(violations)
	if err := os.WriteFile(filepath.Join(w.dir, MarkdownFile), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", MarkdownFile, err)
	}

	payload := struct {
		GeneratedAt time.Time          `json:"generated_at"`
		Errors      []policy.Violation `json:"errors"`
		Warnings    []policy.Violation `json:"warnings"`
	}{
		GeneratedAt: w.now().UTC(),
		Errors:      bySeverity(violations, policy.SeverityError),
		Warnings:    bySeverity(violations, policy.SeverityWarn),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, JSONFile), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", JSONFile, err)
	}
	return nil
}

// renderMarkdown builds the human-facing report body.
func (w *Writer) renderMarkdown(violations []policy.Violation) string {
	var b strings.Builder
	b.WriteString("# Compliance Report\n\n")

	if len(violations) == 0 {
		b.WriteString("No violations found. All checks passed.\n")
		return b.String()
	}

	errors := bySeverity(violations, policy.SeverityError)
	warnings := bySeverity(violations, policy.SeverityWarn)
	fmt.Fprintf(&b, "Errors: %d, warnings: %d\n", len(errors), len(warnings))

	writeGroup := func(title string, group []policy.Violation) {
		if len(group) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, v := range group {
			fmt.Fprintf(&b, "- **%s**: %s", v.RuleID, v.Message)
			if v.Path != "" {
				fmt.Fprintf(&b, " (`%s`)", v.Path)
			}
			b.WriteString("\n")
		}
	}
	writeGroup("Errors", errors)
	writeGroup("Warnings", warnings)
	return b.String()
}

// bySeverity filters violations of one severity, preserving order.
func bySeverity(violations []policy.Violation, s policy.Severity) []policy.Violation {
	out := []policy.Violation{}
	for _, v := range violations {
		if v.Severity == s {
			out = append(out, v)
		}
	}
	return out
}
