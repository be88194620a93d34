// Package orchestrator composes the digest builder, completion backend, and
// policy engine into the plan/apply/check/explain pipeline.
//
// Planning never mutates the repository. Applying re-plans, verifies the
// digest hash against the persisted snapshot (the stability gate), then
// writes the staged change set only if no error-severity violation survives
// the allow-list: either every staged change is written or none are.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/workshopforge/workshopforge/internal/digest"
	"github.com/workshopforge/workshopforge/internal/policy"
)

// Errors surfaced by the pipeline. Policy violations are not errors; they
// are data on the results.
var (
	// ErrSpecChanged is the stability violation: the specification digest
	// no longer matches the persisted snapshot. The caller must re-plan.
	// This is a correctness guard, never to be silently bypassed.
	ErrSpecChanged = errors.New("specification changed since last recorded operation")

	// ErrUnsafeChangePath rejects staged changes that would escape the
	// target directory.
	ErrUnsafeChangePath = errors.New("staged change path escapes target directory")
)

// ChangeAction is the kind of filesystem mutation a change performs.
type ChangeAction string

const (
	// ActionCreate creates a new file.
	ActionCreate ChangeAction = "create"

	// ActionUpdate overwrites an existing file.
	ActionUpdate ChangeAction = "update"
)

// Change is one staged filesystem action, relative to the target directory.
type Change struct {
	Path      string       `json:"path"`
	Action    ChangeAction `json:"action"`
	Content   string       `json:"content,omitempty"`
	Rationale string       `json:"rationale,omitempty"`
}

// Planner produces a change set for a goal. It is a collaborator boundary:
// the orchestrator's contract is "given a goal and a digest, obtain a
// change set," whether that comes from a generative backend or a fixed
// stub.
type Planner interface {
	ProposeChanges(ctx context.Context, goal string, d digest.Digest, response string) ([]Change, error)
}

// Plan is the structured result of a plan operation.
type Plan struct {
	Goal        string    `json:"goal"`
	SpecHash    string    `json:"spec_hash"`
	Backend     string    `json:"backend"`
	GeneratedAt time.Time `json:"generated_at"`
	Response    string    `json:"response_text"`
	AuditID     string    `json:"audit_id,omitempty"`
}

// ApplyResult is the structured result of an apply operation. A blocked
// apply is a normal result, not an error.
type ApplyResult struct {
	Success    bool               `json:"success"`
	Goal       string             `json:"goal"`
	SpecHash   string             `json:"spec_hash"`
	Backend    string             `json:"backend"`
	AppliedAt  time.Time          `json:"applied_at"`
	Changes    []Change           `json:"changes"`
	Violations []policy.Violation `json:"violations"`

	// BlockedBy lists the rule IDs whose error-severity violations
	// prevented the write step.
	BlockedBy []string `json:"blocked_by,omitempty"`

	Message string `json:"message"`
	AuditID string `json:"audit_id,omitempty"`
}
