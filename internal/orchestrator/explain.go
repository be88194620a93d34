package orchestrator

import (
	"fmt"
	"path"
	"strings"
)

// ModuleRef ties a repository path to the learning module that requires it.
type ModuleRef struct {
	ModuleID    string `json:"module_id"`
	Objective   string `json:"objective"`
	Deliverable string `json:"deliverable"`
}

// Explanation cross-references a repository path against the specification.
type Explanation struct {
	Path       string      `json:"path"`
	Referenced bool        `json:"referenced"`
	Modules    []ModuleRef `json:"modules,omitempty"`
	Areas      []string    `json:"areas,omitempty"`
}

// Explain reports which learning modules reference the given repository
// path and which access areas it falls under. It is a pure lookup over the
// loaded specification and touches neither the filesystem nor the backend.
func (o *Orchestrator) Explain(p string) *Explanation {
	norm := strings.Trim(path.Clean(strings.ReplaceAll(p, "\\", "/")), "/")
	e := &Explanation{Path: norm}

	for _, m := range o.spec.Modules {
		for _, d := range m.Deliverables {
			dn := strings.Trim(path.Clean(d), "/")
			if dn == norm || strings.HasSuffix(norm, "/"+dn) {
				e.Modules = append(e.Modules, ModuleRef{
					ModuleID:    m.ID,
					Objective:   m.Objective,
					Deliverable: d,
				})
			}
		}
	}

	switch {
	case strings.HasPrefix(norm, "instructor/"):
		e.Areas = append(e.Areas, "instructor-only materials, excluded from the student pack")
	case strings.HasPrefix(norm, "reference/"):
		e.Areas = append(e.Areas, "reference solutions, instructor access only")
	case strings.HasPrefix(norm, "labs/"):
		e.Areas = append(e.Areas, "student-facing lab exercise")
	}

	e.Referenced = len(e.Modules) > 0 || len(e.Areas) > 0
	return e
}

// Summary renders the explanation as short markdown for CLI output.
func (e *Explanation) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Explanation for `%s`\n\n", e.Path)
	if !e.Referenced {
		b.WriteString("This path is not directly referenced in the specifications.\n")
		return b.String()
	}
	if len(e.Modules) > 0 {
		b.WriteString("Required as a deliverable by:\n\n")
		for _, m := range e.Modules {
			fmt.Fprintf(&b, "- module `%s` (%s): %s\n", m.ModuleID, m.Objective, m.Deliverable)
		}
		b.WriteString("\n")
	}
	for _, a := range e.Areas {
		fmt.Fprintf(&b, "Access area: %s.\n", a)
	}
	return b.String()
}
