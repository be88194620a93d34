package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/workshopforge/workshopforge/internal/generate"
)

var (
	generateTarget string
	promoteSource  string
	promoteDest    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the instructor repository from the spec",
	Long: `Generate the instructor repository deterministically from the spec:
README, course outline, one lab per module, instructor slides and notes,
a reference area, and the basic-checks CI workflow when enabled.

Examples:
  forge generate
  forge generate --target out/instructor`,
	RunE: runGenerate,
}

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Promote the instructor repository into a student pack",
	Long: `Copy the instructor repository into a student pack, excluding
instructor-only material. instructor/ and reference/ are always redacted;
the spec profile may add further patterns.

Examples:
  forge promote
  forge promote --source out/instructor --dest out/student`,
	RunE: runPromote,
}

func init() {
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "output directory (default <base-dir>/out/instructor)")
	promoteCmd.Flags().StringVar(&promoteSource, "source", "", "instructor repository (default <base-dir>/out/instructor)")
	promoteCmd.Flags().StringVar(&promoteDest, "dest", "", "student pack directory (default <base-dir>/out/student)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSpec()
	if err != nil {
		return err
	}
	target := generateTarget
	if target == "" {
		target = filepath.Join(baseDir, "out", "instructor")
	}
	written, err := generate.NewGenerator(logger).Generate(s, target)
	if err != nil {
		return err
	}
	for _, rel := range written {
		fmt.Println(successStyle.Render("  ✓ ") + rel)
	}
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf("generated %d file(s) in %s", len(written), target))
	return nil
}

func runPromote(cmd *cobra.Command, args []string) error {
	s, err := loadSpec()
	if err != nil {
		return err
	}
	src := promoteSource
	if src == "" {
		src = filepath.Join(baseDir, "out", "instructor")
	}
	dest := promoteDest
	if dest == "" {
		dest = filepath.Join(baseDir, "out", "student")
	}
	copied, err := generate.Promote(src, dest, s.Profile.StudentPack.Redactions)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ ") + fmt.Sprintf("promoted %d file(s) to %s", len(copied), dest))
	return nil
}
