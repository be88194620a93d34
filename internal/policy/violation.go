// Package policy evaluates workshop specifications and generated output
// against an ordered set of independent compliance rules.
//
// Violations are ordinary data, not errors: the caller decides what to do
// with them. Only error-severity violations that survive the allow-list
// block an apply; warnings are always reported and never block.
package policy

// Severity classifies how serious a violation is.
type Severity string

const (
	// SeverityError blocks an apply unless explicitly allow-listed.
	SeverityError Severity = "error"

	// SeverityWarn is advisory and never blocks.
	SeverityWarn Severity = "warn"
)

// Violation is a single rule finding. Immutable once produced.
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
}
