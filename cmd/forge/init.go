package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workshopforge/workshopforge/internal/spec"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new workshop with example spec files",
	Long: `Initialize a new workshop directory with a minimal spec/ layout:
workshop.yml, modules.yml, profile.yml, project.md, and ai_guidelines.md,
plus a starter README.

Examples:
  # Initialize in a new directory
  forge init my-workshop

  # Overwrite an existing layout
  forge init my-workshop --force`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	if !initForce {
		if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
			return fmt.Errorf("directory %s is not empty, use --force to overwrite", root)
		}
	}
	dir := filepath.Join(root, "spec")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		spec.WorkshopFile:   exampleWorkshop,
		spec.ModulesFile:    exampleModules,
		spec.ProfileFile:    exampleProfile,
		spec.ProjectFile:    exampleProject,
		spec.GuidelinesFile: exampleGuidelines,
	}
	for _, name := range []string{spec.WorkshopFile, spec.ModulesFile, spec.ProfileFile, spec.ProjectFile, spec.GuidelinesFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("write spec/%s: %w", name, err)
		}
		fmt.Println(successStyle.Render("  ✓ ") + "created spec/" + name)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte(exampleReadme), 0o644); err != nil {
		return fmt.Errorf("write README.md: %w", err)
	}
	fmt.Println(successStyle.Render("  ✓ ") + "created README.md")
	fmt.Println(successStyle.Render("\n✓ Workshop initialized"))
	fmt.Println(dimStyle.Render("Next: cd " + filepath.Base(root) + " && forge validate"))
	return nil
}

const exampleWorkshop = `id: example-workshop
title: Example Workshop
version: 1.0.0
audience: Developers learning workshopforge
duration:
  groups: 1
  sessions_per_group: 3
  session_minutes: 60
policy:
  student_ai_usage: allowed
  license: CC-BY-4.0
outputs:
  slides: true
  handouts: true
branding:
  org: Your Organization
  theme: default
`

const exampleModules = `modules:
  - id: setup
    title: Environment Setup
    objective: Set up development environment and verify installation
    deliverables:
      - labs/setup/README.md
      - labs/setup/verify.sh
    duration_minutes: 30
  - id: fundamentals
    title: Core Fundamentals
    objective: Understand core concepts and implement basic examples
    deliverables:
      - labs/fundamentals/README.md
      - labs/fundamentals/example.py
    duration_minutes: 60
    depends_on:
      - setup
  - id: advanced
    title: Advanced Topics
    objective: Apply advanced patterns and best practices
    deliverables:
      - labs/advanced/README.md
      - labs/advanced/project/
    duration_minutes: 90
    depends_on:
      - fundamentals
`

const exampleProfile = `domain: software development
materials:
  slides_format: pdf
  deck_engine: revealjs
student_pack:
  include_solutions: false
  redactions:
    - instructor/**
    - reference/**
ci:
  enable_basic_checks: true
`

const exampleProject = `# Project Context

This workshop teaches participants how to build spec-driven, AI-managed
workshops.

## Storyline

Participants learn by doing:
1. Understanding the spec-first approach
2. Generating workshop materials deterministically
3. Using AI orchestration with policy enforcement
4. Maintaining consistency across sessions

## Pedagogical Notes

- Hands-on exercises reinforce concepts
- Progression from simple to complex
- Real-world scenarios and examples
`

const exampleGuidelines = `# AI Generation Guidelines

## Style
- Clear, concise instructions
- Code examples with explanations
- British English spelling for docs

## Structure
- Progressive difficulty
- Self-contained modules
- Consistent formatting

## Constraints
- No placeholder/TODO content in student materials
- All code must be tested and working
- Reference spec sources in generated files
`

const exampleReadme = `# Example Workshop

Workshop initialized with workshopforge.

## Next Steps

1. Edit specs in ` + "`spec/`" + ` directory
2. Validate: ` + "`forge validate`" + `
3. Generate: ` + "`forge generate --target out/instructor`" + `
4. Check compliance: ` + "`forge ai check`" + `

## Structure

` + "```" + `
spec/          # Workshop specifications (edit these)
out/           # Generated content (do not edit directly)
` + "```" + `
`
