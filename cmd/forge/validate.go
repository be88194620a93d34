package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/workshopforge/workshopforge/internal/spec"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the specification directory",
	Long: `Validate the structural integrity of the spec/ directory: required
files, required fields, unique module IDs, and positive durations.

Examples:
  forge validate
  forge validate --spec-dir path/to/spec`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := spec.Load(resolveSpecDir())
	if err != nil {
		return err
	}
	problems := s.Validate()
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, errorStyle.Render("✗ ")+p)
		}
		return fmt.Errorf("specification has %d validation error(s)", len(problems))
	}
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf("specification valid: %q, %d module(s)",
		s.Workshop.Title, len(s.Modules)))
	return nil
}
