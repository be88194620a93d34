package policy

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ModuleCompletenessRule verifies every module has a non-empty objective,
// at least one deliverable, and a positive duration.
type ModuleCompletenessRule struct{}

// NewModuleCompletenessRule creates the module completeness rule.
func NewModuleCompletenessRule() *ModuleCompletenessRule {
	return &ModuleCompletenessRule{}
}

// ID returns the rule identifier.
func (r *ModuleCompletenessRule) ID() string { return "module-completeness" }

// Check validates module completeness against the specification.
func (r *ModuleCompletenessRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	var violations []Violation
	for _, m := range pc.Spec.Modules {
		ref := "modules.yml#" + m.ID
		if m.Objective == "" {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Module '%s' missing objective", m.ID),
				Path:     ref,
			})
		}
		if len(m.Deliverables) == 0 {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Module '%s' has no deliverables", m.ID),
				Path:     ref,
			})
		}
		if m.DurationMinutes <= 0 {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("Module '%s' has invalid duration: %d", m.ID, m.DurationMinutes),
				Path:     ref,
			})
		}
	}
	return violations, nil
}

// DeliverableExistenceRule verifies every declared deliverable exists under
// the target directory. Only evaluable once a target has been generated.
type DeliverableExistenceRule struct{}

// NewDeliverableExistenceRule creates the deliverable existence rule.
func NewDeliverableExistenceRule() *DeliverableExistenceRule {
	return &DeliverableExistenceRule{}
}

// ID returns the rule identifier.
func (r *DeliverableExistenceRule) ID() string { return "deliverable-existence" }

// Check verifies declared deliverables exist under the target.
func (r *DeliverableExistenceRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	if !pc.TargetExists() {
		return nil, nil
	}
	var violations []Violation
	for _, m := range pc.Spec.Modules {
		for _, d := range m.Deliverables {
			if _, err := os.Stat(filepath.Join(pc.TargetDir, d)); err != nil {
				violations = append(violations, Violation{
					RuleID:   r.ID(),
					Severity: SeverityError,
					Message:  fmt.Sprintf("Deliverable not found: %s", d),
					Path:     d,
				})
			}
		}
	}
	return violations, nil
}

// ReadmeRequirementsRule verifies the root README exists and mentions the
// spec-driven nature and the tool name. A missing README is an error; a
// missing term is a warning.
type ReadmeRequirementsRule struct{}

// NewReadmeRequirementsRule creates the README requirements rule.
func NewReadmeRequirementsRule() *ReadmeRequirementsRule {
	return &ReadmeRequirementsRule{}
}

// ID returns the rule identifier.
func (r *ReadmeRequirementsRule) ID() string { return "readme-requirements" }

// Check validates the root README content.
func (r *ReadmeRequirementsRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	if !pc.TargetExists() {
		return nil, nil
	}

	readmePath := filepath.Join(pc.TargetDir, "README.md")
	data, err := os.ReadFile(readmePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Violation{{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  "README.md not found in workshop root",
				Path:     "README.md",
			}}, nil
		}
		return nil, err
	}

	content := strings.ToLower(string(data))
	required := []struct{ term, description string }{
		{"spec", "specifications or spec-driven"},
		{"workshopforge", "workshopforge tool"},
	}

	var violations []Violation
	for _, req := range required {
		if !strings.Contains(content, req.term) {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("README should mention %s", req.description),
				Path:     "README.md",
			})
		}
	}
	return violations, nil
}

// InstructorSeparationRule verifies instructor-only and reference material
// live in their own directories under the target.
type InstructorSeparationRule struct{}

// NewInstructorSeparationRule creates the instructor separation rule.
func NewInstructorSeparationRule() *InstructorSeparationRule {
	return &InstructorSeparationRule{}
}

// ID returns the rule identifier.
func (r *InstructorSeparationRule) ID() string { return "instructor-separation" }

// Check verifies instructor/ and reference/ exist under the target.
func (r *InstructorSeparationRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	if !pc.TargetExists() {
		return nil, nil
	}
	var violations []Violation
	for _, dir := range []string{"instructor", "reference"} {
		if info, err := os.Stat(filepath.Join(pc.TargetDir, dir)); err != nil || !info.IsDir() {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s/ directory not found", dir),
				Path:     dir + "/",
			})
		}
	}
	return violations, nil
}

// forbiddenMarkers are placeholder tokens that must not reach students.
var forbiddenMarkers = []string{"TODO", "FIXME", "XXX"}

// ForbiddenPatternsRule scans student-facing lab material for placeholder
// markers. One violation per file suffices.
type ForbiddenPatternsRule struct{}

// NewForbiddenPatternsRule creates the forbidden patterns rule.
func NewForbiddenPatternsRule() *ForbiddenPatternsRule {
	return &ForbiddenPatternsRule{}
}

// ID returns the rule identifier.
func (r *ForbiddenPatternsRule) ID() string { return "forbidden-patterns" }

// Check scans labs/**/*.md under the target for forbidden markers.
func (r *ForbiddenPatternsRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	if !pc.TargetExists() {
		return nil, nil
	}
	labsDir := filepath.Join(pc.TargetDir, "labs")
	if info, err := os.Stat(labsDir); err != nil || !info.IsDir() {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(labsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var violations []Violation
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		content := string(data)
		for _, marker := range forbiddenMarkers {
			if strings.Contains(content, marker) {
				rel, relErr := filepath.Rel(pc.TargetDir, path)
				if relErr != nil {
					rel = path
				}
				violations = append(violations, Violation{
					RuleID:   r.ID(),
					Severity: SeverityWarn,
					Message:  fmt.Sprintf("Found '%s' in student materials", marker),
					Path:     rel,
				})
				break
			}
		}
	}
	return violations, nil
}

// moduleIDPattern is the lowercase-with-dashes convention for module IDs.
var moduleIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// NamingConventionRule verifies module IDs follow the lowercase-with-dashes
// convention.
type NamingConventionRule struct{}

// NewNamingConventionRule creates the naming convention rule.
func NewNamingConventionRule() *NamingConventionRule {
	return &NamingConventionRule{}
}

// ID returns the rule identifier.
func (r *NamingConventionRule) ID() string { return "naming-convention" }

// Check validates module ID naming.
func (r *NamingConventionRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	var violations []Violation
	for _, m := range pc.Spec.Modules {
		if !moduleIDPattern.MatchString(m.ID) {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityWarn,
				Message:  fmt.Sprintf("Module ID '%s' doesn't follow convention (lowercase-with-dashes)", m.ID),
				Path:     "modules.yml#" + m.ID,
			})
		}
	}
	return violations, nil
}
