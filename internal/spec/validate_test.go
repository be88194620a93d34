package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() *Specification {
	return &Specification{
		Workshop: Workshop{
			ID:       "go-basics",
			Title:    "Go Basics",
			Version:  "1.0.0",
			Audience: "Backend developers",
			Duration: SessionPlan{Groups: 1, SessionsPerGroup: 3, SessionMinutes: 60},
			Policy:   Policy{StudentAIUsage: "allowed"},
		},
		Modules: []Module{
			{
				ID:              "setup",
				Objective:       "Install the toolchain",
				Deliverables:    []string{"labs/setup/README.md"},
				DurationMinutes: 30,
			},
		},
	}
}

func TestValidateOK(t *testing.T) {
	assert.Empty(t, validSpec().Validate())
}

func TestValidateWorkshopProblems(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Specification)
		problem string
	}{
		{
			name:    "missing id",
			mutate:  func(s *Specification) { s.Workshop.ID = "" },
			problem: "workshop: id is required",
		},
		{
			name:    "missing title",
			mutate:  func(s *Specification) { s.Workshop.Title = "" },
			problem: "workshop: title is required",
		},
		{
			name:    "missing version",
			mutate:  func(s *Specification) { s.Workshop.Version = "" },
			problem: "workshop: version is required",
		},
		{
			name:    "missing audience",
			mutate:  func(s *Specification) { s.Workshop.Audience = "" },
			problem: "workshop: audience is required",
		},
		{
			name:    "zero duration",
			mutate:  func(s *Specification) { s.Workshop.Duration.SessionMinutes = 0 },
			problem: "workshop: duration.groups, duration.sessions_per_group, and duration.session_minutes must be positive",
		},
		{
			name:    "missing ai policy",
			mutate:  func(s *Specification) { s.Workshop.Policy.StudentAIUsage = "" },
			problem: "workshop: policy.student_ai_usage is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(s)
			assert.Contains(t, s.Validate(), tt.problem)
		})
	}
}

func TestValidateModuleProblems(t *testing.T) {
	t.Run("no modules", func(t *testing.T) {
		s := validSpec()
		s.Modules = nil
		assert.Contains(t, s.Validate(), "modules: at least one module is required")
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := validSpec()
		s.Modules = append(s.Modules, s.Modules[0])
		assert.Contains(t, s.Validate(), "setup: duplicate module id")
	})

	t.Run("missing fields", func(t *testing.T) {
		s := validSpec()
		s.Modules = append(s.Modules, Module{})
		problems := s.Validate()
		assert.Contains(t, problems, "modules[1]: id is required")
		assert.Contains(t, problems, "modules[1]: objective is required")
		assert.Contains(t, problems, "modules[1]: at least one deliverable is required")
		assert.Contains(t, problems, "modules[1]: duration_minutes must be positive")
	})

	t.Run("collects every problem", func(t *testing.T) {
		s := validSpec()
		s.Workshop.ID = ""
		s.Workshop.Title = ""
		require.Len(t, s.Validate(), 2)
	})
}
