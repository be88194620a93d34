package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workshopforge/workshopforge/internal/audit"
	"github.com/workshopforge/workshopforge/internal/backend"
	"github.com/workshopforge/workshopforge/internal/digest"
	"github.com/workshopforge/workshopforge/internal/policy"
	"github.com/workshopforge/workshopforge/internal/report"
	"github.com/workshopforge/workshopforge/internal/spec"
	"github.com/workshopforge/workshopforge/internal/state"
)

// Default layout under the workshop root.
const (
	DefaultStateDirName   = ".workshopforge"
	DefaultLogsDirName    = "ai_logs"
	DefaultReportsDirName = "reports"
	DefaultTargetDirName  = "out/instructor"
)

const planSystemPrompt = "You are an assistant that plans changes to a workshop repository. " +
	"Work strictly within the specification digest provided. " +
	"Respond with a concise, actionable plan in markdown."

// Options configures an Orchestrator. Zero-value fields fall back to the
// default layout rooted at BaseDir.
type Options struct {
	// BaseDir is the workshop root. Defaults to the parent of the
	// specification directory.
	BaseDir string

	// TargetDir is the repository the pipeline checks and mutates.
	TargetDir string

	StateDir   string
	LogsDir    string
	ReportsDir string

	// Planner converts plan output into a staged change set. Defaults to
	// StubPlanner.
	Planner Planner

	// Engine defaults to the engine with the full default rule set.
	Engine *policy.Engine

	// Completion carries per-request backend options.
	Completion backend.Options

	Logger *zap.Logger
}

// Orchestrator drives the plan/apply/check/explain pipeline for one
// specification and backend.
type Orchestrator struct {
	spec       *spec.Specification
	backend    backend.Backend
	planner    Planner
	engine     *policy.Engine
	states     *state.Store
	logs       *audit.Log
	reports    *report.Writer
	targetDir  string
	completion backend.Options
	logger     *zap.Logger
	now        func() time.Time
}

// New builds an Orchestrator from a loaded specification, a backend, and
// options.
func New(s *spec.Specification, b backend.Backend, opts Options) *Orchestrator {
	base := opts.BaseDir
	if base == "" {
		base = filepath.Dir(s.Dir)
	}
	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = filepath.Join(base, DefaultStateDirName)
	}
	logsDir := opts.LogsDir
	if logsDir == "" {
		logsDir = filepath.Join(base, DefaultLogsDirName)
	}
	reportsDir := opts.ReportsDir
	if reportsDir == "" {
		reportsDir = filepath.Join(base, DefaultReportsDirName)
	}
	targetDir := opts.TargetDir
	if targetDir == "" {
		targetDir = filepath.Join(base, filepath.FromSlash(DefaultTargetDirName))
	}
	planner := opts.Planner
	if planner == nil {
		planner = NewStubPlanner()
	}
	engine := opts.Engine
	if engine == nil {
		engine = policy.NewEngine()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		spec:       s,
		backend:    b,
		planner:    planner,
		engine:     engine,
		states:     state.NewStore(stateDir),
		logs:       audit.NewLog(logsDir),
		reports:    report.NewWriter(reportsDir),
		targetDir:  targetDir,
		completion: opts.Completion,
		logger:     logger,
		now:        time.Now,
	}
}

// TargetDir reports the directory apply and check operate on.
func (o *Orchestrator) TargetDir() string { return o.targetDir }

// StatePath reports where the stability snapshot is persisted.
func (o *Orchestrator) StatePath() string { return o.states.Path() }

// Plan builds the specification digest, obtains a plan from the backend,
// and records the exchange in the audit trail. It never mutates the target
// repository or the persisted state.
func (o *Orchestrator) Plan(ctx context.Context, goal string) (*Plan, error) {
	p, _, err := o.plan(ctx, goal)
	return p, err
}

func (o *Orchestrator) plan(ctx context.Context, goal string) (*Plan, digest.Digest, error) {
	runID := uuid.NewString()
	log := o.logger.With(zap.String("run_id", runID), zap.String("goal", goal))

	d := digest.Build(o.spec)
	log.Info("built specification digest", zap.String("spec_hash", d.Hash))

	messages := []backend.Message{
		{Role: backend.RoleSystem, Content: planSystemPrompt + "\n\n" + d.Text},
		{Role: backend.RoleUser, Content: goal},
	}
	response, err := o.backend.Complete(ctx, messages, o.completion)
	if err != nil {
		return nil, digest.Digest{}, fmt.Errorf("plan: %w", err)
	}

	p := &Plan{
		Goal:        goal,
		SpecHash:    d.Hash,
		Backend:     o.backend.Name(),
		GeneratedAt: o.now().UTC(),
		Response:    response,
	}
	auditID, err := o.logs.Record(audit.Entry{
		Kind:          audit.KindPlan,
		Goal:          goal,
		DigestText:    d.Text,
		BackendOutput: response,
		Result:        p,
	})
	if err != nil {
		return nil, digest.Digest{}, fmt.Errorf("plan: record audit entry: %w", err)
	}
	p.AuditID = auditID
	log.Info("plan recorded", zap.String("audit_id", auditID))
	return p, d, nil
}

// Apply re-plans, enforces the stability gate against the persisted state,
// evaluates the policy engine over the staged change set, and writes the
// changes only when no error-severity violation survives the allow-list.
// allowedRules lists rule IDs whose violations are tolerated for this run.
func (o *Orchestrator) Apply(ctx context.Context, goal string, allowedRules []string) (*ApplyResult, error) {
	p, d, err := o.plan(ctx, goal)
	if err != nil {
		return nil, err
	}
	log := o.logger.With(zap.String("goal", goal), zap.String("spec_hash", d.Hash))

	prior, err := o.states.Load()
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	if prior != nil && prior.SpecHash != d.Hash {
		return nil, fmt.Errorf("%w: recorded %s, current %s", ErrSpecChanged, prior.SpecHash, d.Hash)
	}

	changes, err := o.planner.ProposeChanges(ctx, goal, d, p.Response)
	if err != nil {
		return nil, fmt.Errorf("apply: propose changes: %w", err)
	}
	for _, c := range changes {
		if !filepath.IsLocal(filepath.FromSlash(c.Path)) {
			return nil, fmt.Errorf("%w: %q", ErrUnsafeChangePath, c.Path)
		}
	}

	violations, err := o.engine.CheckAll(ctx, &policy.Context{Spec: o.spec, TargetDir: o.targetDir})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	surviving := policy.FilterAllowed(violations, allowedRules)
	blocked := policy.HasBlocking(surviving)

	result := &ApplyResult{
		Success:    !blocked,
		Goal:       goal,
		SpecHash:   d.Hash,
		Backend:    o.backend.Name(),
		AppliedAt:  o.now().UTC(),
		Changes:    changes,
		Violations: surviving,
	}
	if blocked {
		result.BlockedBy = blockingRuleIDs(surviving)
		result.Message = fmt.Sprintf("blocked by %d policy error(s); no changes written", len(result.BlockedBy))
		log.Warn("apply blocked by policy", zap.Strings("rules", result.BlockedBy))
	} else {
		if err := o.writeChanges(changes); err != nil {
			return nil, fmt.Errorf("apply: %w", err)
		}
		result.Message = fmt.Sprintf("applied %d change(s) to %s", len(changes), o.targetDir)
		log.Info("changes applied", zap.Int("changes", len(changes)))
	}

	if err := o.reports.Write(surviving); err != nil {
		return nil, fmt.Errorf("apply: write compliance report: %w", err)
	}
	auditID, err := o.logs.Record(audit.Entry{
		Kind:          audit.KindApply,
		Goal:          goal,
		DigestText:    d.Text,
		BackendOutput: p.Response,
		Result:        result,
	})
	if err != nil {
		return nil, fmt.Errorf("apply: record audit entry: %w", err)
	}
	result.AuditID = auditID

	if !blocked {
		if err := o.states.Save(state.Record{
			SpecHash:  d.Hash,
			Backend:   o.backend.Name(),
			LastGoal:  goal,
			UpdatedAt: result.AppliedAt,
		}); err != nil {
			return nil, fmt.Errorf("apply: persist state: %w", err)
		}
	}
	return result, nil
}

func (o *Orchestrator) writeChanges(changes []Change) error {
	for _, c := range changes {
		dest := filepath.Join(o.targetDir, filepath.FromSlash(c.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", c.Path, err)
		}
		if err := os.WriteFile(dest, []byte(c.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", c.Path, err)
		}
	}
	return nil
}

// Check runs the full rule set against targetDir and writes the compliance
// report pair. An empty targetDir limits evaluation to spec-only rules.
func (o *Orchestrator) Check(ctx context.Context, targetDir string) ([]policy.Violation, error) {
	violations, err := o.engine.CheckAll(ctx, &policy.Context{Spec: o.spec, TargetDir: targetDir})
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	if err := o.reports.Write(violations); err != nil {
		return nil, fmt.Errorf("check: write compliance report: %w", err)
	}
	o.logger.Info("policy check complete",
		zap.String("target", targetDir),
		zap.Int("violations", len(violations)))
	return violations, nil
}

func blockingRuleIDs(violations []policy.Violation) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, v := range violations {
		if v.Severity != policy.SeverityError {
			continue
		}
		if _, ok := seen[v.RuleID]; ok {
			continue
		}
		seen[v.RuleID] = struct{}{}
		ids = append(ids, v.RuleID)
	}
	return ids
}
