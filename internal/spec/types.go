// Package spec loads and validates workshop specifications.
//
// A specification directory contains workshop.yml and modules.yml (required),
// plus profile.yml, project.md, and ai_guidelines.md (optional). The loader
// merges them into a single Specification value that the rest of the tool
// treats as immutable for the duration of one invocation.
package spec

import (
	"fmt"
	"sort"
)

// SessionPlan describes how workshop time is divided.
type SessionPlan struct {
	Groups           int `yaml:"groups"`
	SessionsPerGroup int `yaml:"sessions_per_group"`
	SessionMinutes   int `yaml:"session_minutes"`
}

// TotalMinutes returns the scheduled minutes for one group.
func (p SessionPlan) TotalMinutes() int {
	return p.SessionsPerGroup * p.SessionMinutes
}

// Summary renders the plan for human-facing material.
func (p SessionPlan) Summary() string {
	return fmt.Sprintf("%d groups x %d sessions (%d min each)",
		p.Groups, p.SessionsPerGroup, p.SessionMinutes)
}

// Policy holds workshop-level policy flags.
type Policy struct {
	StudentAIUsage string `yaml:"student_ai_usage"`
	License        string `yaml:"license"`
}

// Outputs toggles generated artifact classes. Nil pointers mean "enabled":
// a workshop that says nothing about outputs gets both.
type Outputs struct {
	Slides   *bool `yaml:"slides"`
	Handouts *bool `yaml:"handouts"`
}

// SlidesEnabled reports whether slide generation is on.
func (o Outputs) SlidesEnabled() bool { return o.Slides == nil || *o.Slides }

// HandoutsEnabled reports whether handout generation is on.
func (o Outputs) HandoutsEnabled() bool { return o.Handouts == nil || *o.Handouts }

// Branding carries presentation identity.
type Branding struct {
	Org   string `yaml:"org"`
	Theme string `yaml:"theme"`
}

// Workshop is the top-level workshop descriptor from workshop.yml.
type Workshop struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title"`
	Version  string      `yaml:"version"`
	Audience string      `yaml:"audience"`
	Duration SessionPlan `yaml:"duration"`
	Policy   Policy      `yaml:"policy"`
	Outputs  Outputs     `yaml:"outputs"`
	Branding Branding    `yaml:"branding"`
}

// Module is a single learning module from modules.yml.
type Module struct {
	ID              string   `yaml:"id"`
	Title           string   `yaml:"title"`
	Objective       string   `yaml:"objective"`
	Deliverables    []string `yaml:"deliverables"`
	DurationMinutes int      `yaml:"duration_minutes"`
	DependsOn       []string `yaml:"depends_on"`
}

// DisplayTitle returns the title, falling back to the module ID.
func (m Module) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.ID
}

// Materials selects output formats for rendered material.
type Materials struct {
	SlidesFormat string `yaml:"slides_format"`
	DeckEngine   string `yaml:"deck_engine"`
}

// StudentPack configures promotion into a student-facing pack.
type StudentPack struct {
	IncludeSolutions bool     `yaml:"include_solutions"`
	Redactions       []string `yaml:"redactions"`
}

// CI toggles generated CI configuration. EnableBasicChecks defaults to on.
type CI struct {
	EnableBasicChecks *bool `yaml:"enable_basic_checks"`
}

// BasicChecksEnabled reports whether CI workflow generation is on.
func (c CI) BasicChecksEnabled() bool {
	return c.EnableBasicChecks == nil || *c.EnableBasicChecks
}

// Profile is the optional delivery profile from profile.yml.
type Profile struct {
	Domain      string      `yaml:"domain"`
	Materials   Materials   `yaml:"materials"`
	StudentPack StudentPack `yaml:"student_pack"`
	CI          CI          `yaml:"ci"`
}

// Specification aggregates every loaded spec document.
type Specification struct {
	Workshop   Workshop
	Modules    []Module
	Profile    Profile
	Project    string
	Guidelines string

	// Dir is the spec directory the documents were loaded from.
	Dir string
}

// ModuleByID returns the module with the given ID, or nil.
func (s *Specification) ModuleByID(id string) *Module {
	for i := range s.Modules {
		if s.Modules[i].ID == id {
			return &s.Modules[i]
		}
	}
	return nil
}

// Deliverables returns every declared deliverable path across all modules,
// sorted and deduplicated.
func (s *Specification) Deliverables() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range s.Modules {
		for _, d := range m.Deliverables {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}
