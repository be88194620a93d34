package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshopforge/workshopforge/internal/backend"
	"github.com/workshopforge/workshopforge/internal/digest"
	"github.com/workshopforge/workshopforge/internal/logging"
	"github.com/workshopforge/workshopforge/internal/report"
	"github.com/workshopforge/workshopforge/internal/spec"
	"github.com/workshopforge/workshopforge/internal/state"
)

func testSpec() *spec.Specification {
	return &spec.Specification{
		Workshop: spec.Workshop{
			ID:       "go-basics",
			Title:    "Go Basics",
			Version:  "1.0.0",
			Audience: "Backend developers",
			Duration: spec.SessionPlan{Groups: 1, SessionsPerGroup: 3, SessionMinutes: 60},
			Policy:   spec.Policy{StudentAIUsage: "allowed"},
		},
		Modules: []spec.Module{
			{
				ID:              "setup",
				Title:           "Environment Setup",
				Objective:       "Install the toolchain",
				Deliverables:    []string{"labs/setup/README.md"},
				DurationMinutes: 30,
			},
		},
	}
}

func newTestOrchestrator(t *testing.T, opts Options) (*Orchestrator, string) {
	t.Helper()
	base := t.TempDir()
	opts.BaseDir = base
	opts.Logger = logging.NewTestLogger(t)
	return New(testSpec(), backend.NewEcho(), opts), base
}

// seedCompliantTarget materializes a target that passes every default rule.
func seedCompliantTarget(t *testing.T, target string) {
	t.Helper()
	write := func(rel, content string) {
		path := filepath.Join(target, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("README.md", "# Go Basics\n\nGenerated by workshopforge from the spec.\n")
	write("labs/setup/README.md", "# Environment Setup\n")
	write("instructor/notes/notes.md", "# Notes\n")
	write("reference/.keep", "")
}

func TestPlan(t *testing.T) {
	o, base := newTestOrchestrator(t, Options{})

	p, err := o.Plan(context.Background(), "add a quiz module")
	require.NoError(t, err)

	assert.Equal(t, "add a quiz module", p.Goal)
	assert.Equal(t, "echo", p.Backend)
	assert.Len(t, p.SpecHash, digest.HashLength)
	assert.Contains(t, p.Response, "add a quiz module")
	assert.NotEmpty(t, p.AuditID)

	// The audit entry exists with the full forensic record.
	entryDir := filepath.Join(base, DefaultLogsDirName, p.AuditID)
	for _, name := range []string{"prelude.txt", "prompt.json", "response.txt", "result.json"} {
		_, err := os.Stat(filepath.Join(entryDir, name))
		assert.NoError(t, err, name)
	}

	// Planning never creates the target or persists state.
	_, err = os.Stat(o.TargetDir())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(o.StatePath())
	assert.True(t, os.IsNotExist(err))
}

func TestPlanIsStable(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})

	first, err := o.Plan(context.Background(), "goal one")
	require.NoError(t, err)
	second, err := o.Plan(context.Background(), "goal two")
	require.NoError(t, err)

	assert.Equal(t, first.SpecHash, second.SpecHash)
}

func TestApplyWritesChanges(t *testing.T) {
	o, base := newTestOrchestrator(t, Options{})
	seedCompliantTarget(t, o.TargetDir())

	result, err := o.Apply(context.Background(), "add a quiz module", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.BlockedBy)
	require.Len(t, result.Changes, 1)

	// The staged change landed under the target.
	_, err = os.Stat(filepath.Join(o.TargetDir(), filepath.FromSlash(result.Changes[0].Path)))
	assert.NoError(t, err)

	// State records the applied hash for the stability gate.
	rec, err := state.NewStore(filepath.Join(base, DefaultStateDirName)).Load()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, result.SpecHash, rec.SpecHash)
	assert.Equal(t, "add a quiz module", rec.LastGoal)
	assert.Equal(t, "echo", rec.Backend)

	// The compliance report was regenerated.
	_, err = os.Stat(filepath.Join(base, DefaultReportsDirName, report.MarkdownFile))
	assert.NoError(t, err)
}

func TestApplyBlockedByPolicy(t *testing.T) {
	o, base := newTestOrchestrator(t, Options{})
	// An existing but empty target trips the repository rules.
	require.NoError(t, os.MkdirAll(o.TargetDir(), 0o755))

	result, err := o.Apply(context.Background(), "add a quiz module", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.BlockedBy, "deliverable-existence")
	assert.Contains(t, result.BlockedBy, "instructor-separation")
	assert.Contains(t, result.BlockedBy, "readme-requirements")

	// Nothing was written and no state was persisted.
	entries, err := os.ReadDir(o.TargetDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
	rec, err := state.NewStore(filepath.Join(base, DefaultStateDirName)).Load()
	require.NoError(t, err)
	assert.Nil(t, rec)

	// The blocked run is still fully audited and reported.
	assert.NotEmpty(t, result.AuditID)
	_, err = os.Stat(filepath.Join(base, DefaultReportsDirName, report.JSONFile))
	assert.NoError(t, err)
}

func TestApplyAllowListUnblocks(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	require.NoError(t, os.MkdirAll(o.TargetDir(), 0o755))

	allowed := []string{"deliverable-existence", "instructor-separation", "readme-requirements"}
	result, err := o.Apply(context.Background(), "draft content", allowed)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Violations)
}

func TestApplyStabilityGate(t *testing.T) {
	o, base := newTestOrchestrator(t, Options{})
	seedCompliantTarget(t, o.TargetDir())

	store := state.NewStore(filepath.Join(base, DefaultStateDirName))
	require.NoError(t, store.Save(state.Record{SpecHash: "0000000000000000"}))

	_, err := o.Apply(context.Background(), "any goal", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpecChanged)

	// The stale record survives the refused apply.
	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000", rec.SpecHash)
}

func TestApplyAcceptsMatchingState(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{})
	seedCompliantTarget(t, o.TargetDir())

	first, err := o.Apply(context.Background(), "first goal", nil)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := o.Apply(context.Background(), "second goal", nil)
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, first.SpecHash, second.SpecHash)
}

// escapePlanner stages a change outside the target directory.
type escapePlanner struct{}

func (escapePlanner) ProposeChanges(context.Context, string, digest.Digest, string) ([]Change, error) {
	return []Change{{Path: "../outside.md", Action: ActionCreate, Content: "x"}}, nil
}

func TestApplyRejectsEscapingPaths(t *testing.T) {
	o, _ := newTestOrchestrator(t, Options{Planner: escapePlanner{}})
	seedCompliantTarget(t, o.TargetDir())

	_, err := o.Apply(context.Background(), "bad planner", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafeChangePath)
}

func TestCheck(t *testing.T) {
	o, base := newTestOrchestrator(t, Options{})

	t.Run("compliant target", func(t *testing.T) {
		seedCompliantTarget(t, o.TargetDir())
		violations, err := o.Check(context.Background(), o.TargetDir())
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("empty target limits to spec rules", func(t *testing.T) {
		violations, err := o.Check(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("report pair is written", func(t *testing.T) {
		_, err := o.Check(context.Background(), o.TargetDir())
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(base, DefaultReportsDirName, report.MarkdownFile))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(base, DefaultReportsDirName, report.JSONFile))
		assert.NoError(t, err)
	})
}

func TestStubPlanner(t *testing.T) {
	d := digest.Digest{Text: "ctx", Hash: "abc123"}
	changes, err := NewStubPlanner().ProposeChanges(context.Background(), "Add a Quiz!", d, "plan body")
	require.NoError(t, err)

	require.Len(t, changes, 1)
	assert.Equal(t, "generated/add-a-quiz.md", changes[0].Path)
	assert.Equal(t, ActionCreate, changes[0].Action)
	assert.Contains(t, changes[0].Content, "abc123")
	assert.Contains(t, changes[0].Content, "plan body")
}
