package orchestrator

import (
	"context"
	"fmt"

	"github.com/workshopforge/workshopforge/internal/digest"
	"github.com/workshopforge/workshopforge/internal/sanitize"
)

// StubPlanner stages a single deterministic change recording the goal and
// the backend's plan. It stands in until structured change extraction from
// model output lands.
type StubPlanner struct{}

// NewStubPlanner returns a StubPlanner.
func NewStubPlanner() *StubPlanner { return &StubPlanner{} }

// ProposeChanges stages one markdown note under generated/.
func (p *StubPlanner) ProposeChanges(_ context.Context, goal string, d digest.Digest, response string) ([]Change, error) {
	path := fmt.Sprintf("generated/%s.md", sanitize.Slug(goal))
	content := fmt.Sprintf("# %s\n\nSpecification digest: %s\n\n%s\n", goal, d.Hash, response)
	return []Change{{
		Path:      path,
		Action:    ActionCreate,
		Content:   content,
		Rationale: fmt.Sprintf("plan output for goal %q", goal),
	}}, nil
}
