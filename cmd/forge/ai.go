package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workshopforge/workshopforge/internal/backend"
	"github.com/workshopforge/workshopforge/internal/orchestrator"
	"github.com/workshopforge/workshopforge/internal/policy"
)

var (
	aiBackend         string
	aiModel           string
	aiTarget          string
	aiAllowViolations string
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "AI-assisted operations under policy control",
	Long: `AI-assisted operations against the workshop repository. Every
operation builds the spec digest first; plan and apply send it to the
configured backend, and apply refuses to write while blocking policy
violations remain.`,
}

var aiPlanCmd = &cobra.Command{
	Use:   "plan <goal>",
	Short: "Plan changes for a goal without touching the repository",
	Long: `Build the spec digest, ask the backend for a plan, and record the
exchange in the audit trail. Nothing is written to the repository.

Examples:
  forge ai plan "add a module quiz"
  forge ai plan --backend openai "tighten the setup lab"`,
	Args: cobra.ExactArgs(1),
	RunE: runAIPlan,
}

var aiApplyCmd = &cobra.Command{
	Use:   "apply <goal>",
	Short: "Apply planned changes if policy checks pass",
	Long: `Re-plan for the goal, verify the spec has not changed since the last
recorded operation, and write the staged changes only if no blocking
policy violation remains. Warnings never block.

Examples:
  forge ai apply "add a module quiz"
  forge ai apply --allow-violations readme-requirements "draft content"`,
	Args: cobra.ExactArgs(1),
	RunE: runAIApply,
}

var aiCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every policy rule and write the compliance report",
	Long: `Evaluate all policy rules against the target repository and write
compliance.md and compliance.json under reports/.

Examples:
  forge ai check
  forge ai check --target out/instructor`,
	RunE: runAICheck,
}

var aiExplainCmd = &cobra.Command{
	Use:   "explain <path>",
	Short: "Explain which spec modules reference a repository path",
	Long: `Cross-reference a repository path against the spec: which modules
declare it as a deliverable and which access area it belongs to.

Examples:
  forge ai explain labs/setup/README.md
  forge ai explain instructor/slides/slides.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAIExplain,
}

func init() {
	aiCmd.PersistentFlags().StringVar(&aiBackend, "backend", "", "completion backend: echo, openai, anthropic (default from config)")
	aiCmd.PersistentFlags().StringVar(&aiModel, "model", "", "model override for the backend")
	aiCheckCmd.Flags().StringVar(&aiTarget, "target", "", "repository to check (default <base-dir>/out/instructor)")
	aiApplyCmd.Flags().StringVar(&aiAllowViolations, "allow-violations", "", "comma-separated rule IDs whose violations are tolerated")
	aiCmd.AddCommand(aiPlanCmd)
	aiCmd.AddCommand(aiApplyCmd)
	aiCmd.AddCommand(aiCheckCmd)
	aiCmd.AddCommand(aiExplainCmd)
}

// newOrchestrator wires the spec, backend, and directory layout together.
func newOrchestrator() (*orchestrator.Orchestrator, error) {
	s, err := loadSpec()
	if err != nil {
		return nil, err
	}
	name := aiBackend
	if name == "" {
		name = cfg.AI.Backend
	}
	b, err := backend.Open(name)
	if err != nil {
		return nil, err
	}
	model := aiModel
	if model == "" {
		model = cfg.AI.Model
	}
	return orchestrator.New(s, b, orchestrator.Options{
		BaseDir:    baseDir,
		StateDir:   filepath.Join(baseDir, cfg.StateDirName),
		Completion: backend.Options{Model: model},
		Logger:     logger,
	}), nil
}

func runAIPlan(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}
	p, err := o.Plan(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(dimStyle.Render("spec digest: " + p.SpecHash + "  backend: " + p.Backend))
	fmt.Println()
	fmt.Println(p.Response)
	fmt.Println()
	fmt.Println(successStyle.Render("✓ ") + "plan recorded as " + p.AuditID)
	return nil
}

func runAIApply(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}
	result, err := o.Apply(cmd.Context(), args[0], splitRuleList(aiAllowViolations))
	if err != nil {
		if errors.Is(err, orchestrator.ErrSpecChanged) {
			return fmt.Errorf("%w; run 'forge ai plan' against the current spec first", err)
		}
		return err
	}
	printViolations(result.Violations)
	if !result.Success {
		return fmt.Errorf("apply blocked by policy rule(s): %s", strings.Join(result.BlockedBy, ", "))
	}
	for _, c := range result.Changes {
		fmt.Println(successStyle.Render("  ✓ ") + string(c.Action) + " " + c.Path)
	}
	fmt.Println(successStyle.Render("✓ ") + result.Message)
	return nil
}

func runAICheck(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}
	target := aiTarget
	if target == "" {
		target = o.TargetDir()
	}
	violations, err := o.Check(cmd.Context(), target)
	if err != nil {
		return err
	}
	printViolations(violations)
	if policy.HasBlocking(violations) {
		return fmt.Errorf("compliance check failed: %d violation(s)", len(violations))
	}
	if len(violations) > 0 {
		fmt.Println(warnStyle.Render("✓ compliant with warnings"))
		return nil
	}
	fmt.Println(successStyle.Render("✓ fully compliant"))
	return nil
}

func runAIExplain(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}
	fmt.Print(o.Explain(args[0]).Summary())
	return nil
}
