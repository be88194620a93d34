package policy

import (
	"context"
	"fmt"
	"os"

	"github.com/workshopforge/workshopforge/internal/spec"
)

// Context is the shared evaluation context passed to every rule.
//
// Some rules are specification-only; rules that assert on generated output
// must no-op when the target directory is absent, since they cannot yet be
// evaluated.
type Context struct {
	Spec *spec.Specification

	// TargetDir is the generated workshop directory, or "" when no target
	// has been materialized yet.
	TargetDir string
}

// TargetExists reports whether a target directory is set and present.
func (c *Context) TargetExists() bool {
	if c.TargetDir == "" {
		return false
	}
	info, err := os.Stat(c.TargetDir)
	return err == nil && info.IsDir()
}

// Rule is a single compliance rule. Implementations must be independent of
// each other: no shared state between evaluators.
type Rule interface {
	// ID returns the stable rule identifier used in violations and
	// allow-lists.
	ID() string

	// Check evaluates the rule, returning violations if any. An error
	// return is a programming defect, not a finding, and propagates.
	Check(ctx context.Context, pc *Context) ([]Violation, error)
}

// Engine holds an ordered, extensible registry of rules.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the default rule set registered in its
// canonical order.
func NewEngine() *Engine {
	e := &Engine{}
	e.Register(NewModuleCompletenessRule())
	e.Register(NewDeliverableExistenceRule())
	e.Register(NewReadmeRequirementsRule())
	e.Register(NewInstructorSeparationRule())
	e.Register(NewForbiddenPatternsRule())
	e.Register(NewNamingConventionRule())
	e.Register(NewSlideContentRule())
	return e
}

// NewEmptyEngine creates an engine with no rules registered.
func NewEmptyEngine() *Engine {
	return &Engine{}
}

// Register appends a rule. Evaluation order is registration order.
func (e *Engine) Register(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the registered rule IDs in order.
func (e *Engine) Rules() []string {
	ids := make([]string, len(e.rules))
	for i, r := range e.rules {
		ids[i] = r.ID()
	}
	return ids
}

// CheckAll runs every registered rule and concatenates results in
// registration order.
func (e *Engine) CheckAll(ctx context.Context, pc *Context) ([]Violation, error) {
	var all []Violation
	for _, r := range e.rules {
		violations, err := r.Check(ctx, pc)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID(), err)
		}
		all = append(all, violations...)
	}
	return all, nil
}

// FilterAllowed removes violations whose rule ID is in the caller-supplied
// allow-list. This is the only sanctioned override mechanism; severity alone
// never suppresses a finding.
func FilterAllowed(violations []Violation, allowedIDs []string) []Violation {
	if len(allowedIDs) == 0 {
		return violations
	}
	allowed := make(map[string]bool, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = true
	}
	var out []Violation
	for _, v := range violations {
		if !allowed[v.RuleID] {
			out = append(out, v)
		}
	}
	return out
}

// HasBlocking reports whether any violation has error severity.
func HasBlocking(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
