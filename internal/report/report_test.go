package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshopforge/workshopforge/internal/policy"
)

func TestWriteEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, NewWriter(dir).Write(nil))

	md, err := os.ReadFile(filepath.Join(dir, MarkdownFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "No violations found")

	var payload struct {
		Errors   []policy.Violation `json:"errors"`
		Warnings []policy.Violation `json:"warnings"`
	}
	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Empty(t, payload.Errors)
	assert.Empty(t, payload.Warnings)
}

func TestWriteGroupsBySeverity(t *testing.T) {
	violations := []policy.Violation{
		{RuleID: "deliverable-existence", Severity: policy.SeverityError, Message: "Deliverable not found: labs/setup/README.md", Path: "labs/setup/README.md"},
		{RuleID: "readme-requirements", Severity: policy.SeverityWarn, Message: "README should mention workshopforge tool", Path: "README.md"},
		{RuleID: "instructor-separation", Severity: policy.SeverityError, Message: "reference/ directory not found", Path: "reference/"},
	}

	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, NewWriter(dir).Write(violations))

	md, err := os.ReadFile(filepath.Join(dir, MarkdownFile))
	require.NoError(t, err)
	body := string(md)
	assert.Contains(t, body, "Errors: 2, warnings: 1")
	assert.Contains(t, body, "## Errors")
	assert.Contains(t, body, "## Warnings")
	assert.Contains(t, body, "- **deliverable-existence**: Deliverable not found: labs/setup/README.md (`labs/setup/README.md`)")

	var payload struct {
		Errors   []policy.Violation `json:"errors"`
		Warnings []policy.Violation `json:"warnings"`
	}
	data, err := os.ReadFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.Errors, 2)
	require.Len(t, payload.Warnings, 1)
	assert.Equal(t, "readme-requirements", payload.Warnings[0].RuleID)
}

func TestWriteOverwritesPreviousReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewWriter(dir)

	require.NoError(t, w.Write([]policy.Violation{
		{RuleID: "naming-convention", Severity: policy.SeverityWarn, Message: "bad name"},
	}))
	require.NoError(t, w.Write(nil))

	md, err := os.ReadFile(filepath.Join(dir, MarkdownFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "No violations found")
	assert.NotContains(t, string(md), "bad name")
}
