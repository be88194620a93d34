// Package generate scaffolds the instructor repository from a loaded
// specification and promotes it into a student pack with instructor
// material redacted.
package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/workshopforge/workshopforge/internal/spec"
)

// Generator writes the instructor repository scaffold.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator returns a Generator. A nil logger disables logging.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate writes the full instructor repository for s under outDir:
// top-level README and course outline, one lab directory per module,
// instructor slides and notes, a reference area, and optionally the basic
// checks workflow. Existing files are overwritten. It returns the relative
// paths written, in write order.
func (g *Generator) Generate(s *spec.Specification, outDir string) ([]string, error) {
	var written []string
	write := func(rel string, tpl *template.Template, data any) error {
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}
		dest := filepath.Join(outDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("generate %s: %w", rel, err)
		}
		if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("generate %s: %w", rel, err)
		}
		written = append(written, rel)
		return nil
	}

	if err := write("README.md", readmeTemplate, s); err != nil {
		return nil, err
	}
	if err := write("COURSE.md", courseTemplate, s); err != nil {
		return nil, err
	}
	for _, m := range s.Modules {
		if err := write(fmt.Sprintf("labs/%s/README.md", m.ID), labTemplate, m); err != nil {
			return nil, err
		}
	}
	if s.Workshop.Outputs.SlidesEnabled() {
		if err := write("instructor/slides/slides.md", slidesTemplate, s); err != nil {
			return nil, err
		}
	}
	if err := write("instructor/notes/notes.md", notesTemplate, s); err != nil {
		return nil, err
	}

	keep := filepath.Join(outDir, "reference", ".keep")
	if err := os.MkdirAll(filepath.Dir(keep), 0o755); err != nil {
		return nil, fmt.Errorf("generate reference/.keep: %w", err)
	}
	if err := os.WriteFile(keep, nil, 0o644); err != nil {
		return nil, fmt.Errorf("generate reference/.keep: %w", err)
	}
	written = append(written, "reference/.keep")

	if s.Profile.CI.BasicChecksEnabled() {
		if err := write(".github/workflows/basic_checks.yml", workflowTemplate, s); err != nil {
			return nil, err
		}
	}

	g.logger.Info("instructor repository generated",
		zap.String("out_dir", outDir),
		zap.Int("files", len(written)))
	return written, nil
}
