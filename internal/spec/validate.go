package spec

import "fmt"

// Validate performs structural validation of a loaded specification and
// returns one message per problem. An empty slice means the specification
// is well formed. Cross-file concerns such as prerequisite existence are
// policy questions, not structural ones, and are checked elsewhere.
func (s *Specification) Validate() []string {
	var problems []string

	w := s.Workshop
	if w.ID == "" {
		problems = append(problems, "workshop: id is required")
	}
	if w.Title == "" {
		problems = append(problems, "workshop: title is required")
	}
	if w.Version == "" {
		problems = append(problems, "workshop: version is required")
	}
	if w.Audience == "" {
		problems = append(problems, "workshop: audience is required")
	}
	if w.Duration.Groups <= 0 || w.Duration.SessionsPerGroup <= 0 || w.Duration.SessionMinutes <= 0 {
		problems = append(problems, "workshop: duration.groups, duration.sessions_per_group, and duration.session_minutes must be positive")
	}
	if w.Policy.StudentAIUsage == "" {
		problems = append(problems, "workshop: policy.student_ai_usage is required")
	}

	if len(s.Modules) == 0 {
		problems = append(problems, "modules: at least one module is required")
	}
	seen := make(map[string]bool)
	for i, m := range s.Modules {
		ref := m.ID
		if ref == "" {
			ref = fmt.Sprintf("modules[%d]", i)
			problems = append(problems, fmt.Sprintf("%s: id is required", ref))
		}
		if seen[m.ID] && m.ID != "" {
			problems = append(problems, fmt.Sprintf("%s: duplicate module id", ref))
		}
		seen[m.ID] = true
		if m.Objective == "" {
			problems = append(problems, fmt.Sprintf("%s: objective is required", ref))
		}
		if len(m.Deliverables) == 0 {
			problems = append(problems, fmt.Sprintf("%s: at least one deliverable is required", ref))
		}
		if m.DurationMinutes <= 0 {
			problems = append(problems, fmt.Sprintf("%s: duration_minutes must be positive", ref))
		}
	}

	return problems
}
