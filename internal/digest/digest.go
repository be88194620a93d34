// Package digest renders a specification into a canonical context document
// with a short content hash.
//
// The digest is the unit of session stability: two invocations against the
// same specification always see byte-identical digest text and therefore the
// same hash, so the orchestrator can detect specification drift between a
// plan and a later apply by comparing hashes alone. The rendering depends
// only on the in-memory Specification value, never on the clock, filesystem
// iteration order, or randomness.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/workshopforge/workshopforge/internal/spec"
)

// HashLength is the number of hex characters kept from the SHA-256 digest.
// The hash is only used for equality comparison and human display, so the
// truncation is a readability choice, not a security boundary.
const HashLength = 16

// Digest is the canonical context document plus its content hash.
type Digest struct {
	Text string
	Hash string
}

// Build renders the specification into digest text and hashes it.
func Build(s *spec.Specification) Digest {
	text := render(s)
	return Digest{Text: text, Hash: hashText(text)}
}

// hashText computes the truncated SHA-256 hex digest of text.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:HashLength]
}

// render produces the digest text in fixed section order: identity and
// policy, repository layout, modules in specification order, project
// narrative, guidelines, and the closing constraints block.
func render(s *spec.Specification) string {
	w := s.Workshop
	var b strings.Builder

	fmt.Fprintf(&b, "# Workshop Specification Context\n\n")
	fmt.Fprintf(&b, "**Workshop ID:** %s\n", w.ID)
	fmt.Fprintf(&b, "**Title:** %s\n", w.Title)
	fmt.Fprintf(&b, "**Version:** %s\n", w.Version)
	fmt.Fprintf(&b, "**Audience:** %s\n", w.Audience)
	fmt.Fprintf(&b, "**Domain:** %s\n\n", s.Profile.Domain)

	b.WriteString("## Structure and Policies\n\n")
	fmt.Fprintf(&b, "- Duration: %d groups x %d sessions (%d min each)\n",
		w.Duration.Groups, w.Duration.SessionsPerGroup, w.Duration.SessionMinutes)
	fmt.Fprintf(&b, "- Student AI usage: **%s**\n", w.Policy.StudentAIUsage)
	fmt.Fprintf(&b, "- License: %s\n", w.Policy.License)
	fmt.Fprintf(&b, "- Outputs: slides=%t, handouts=%t\n\n",
		w.Outputs.SlidesEnabled(), w.Outputs.HandoutsEnabled())

	b.WriteString("## Repository Structure\n\n")
	b.WriteString("```\n")
	fmt.Fprintf(&b, "%s/\n", w.ID)
	b.WriteString("  spec/          # Specifications (source of truth)\n")
	b.WriteString("  labs/          # Student exercises\n")
	b.WriteString("  instructor/    # Instructor-only materials\n")
	b.WriteString("  reference/     # Reference solutions\n")
	b.WriteString("```\n\n")

	b.WriteString("## Learning Modules\n\n")
	for i, m := range s.Modules {
		fmt.Fprintf(&b, "### %d. %s (`%s`)\n", i+1, m.DisplayTitle(), m.ID)
		fmt.Fprintf(&b, "**Objective:** %s\n", m.Objective)
		fmt.Fprintf(&b, "**Duration:** %d min\n", m.DurationMinutes)
		b.WriteString("**Deliverables:**\n")
		for _, d := range m.Deliverables {
			fmt.Fprintf(&b, "  - `%s`\n", d)
		}
		if len(m.DependsOn) > 0 {
			fmt.Fprintf(&b, "**Prerequisites:** %s\n", strings.Join(m.DependsOn, ", "))
		}
		b.WriteString("\n")
	}

	if p := strings.TrimSpace(s.Project); p != "" {
		b.WriteString("## Project Context\n\n")
		b.WriteString(p)
		b.WriteString("\n\n")
	}

	if g := strings.TrimSpace(s.Guidelines); g != "" {
		b.WriteString("## AI Generation Guidelines\n\n")
		b.WriteString(g)
		b.WriteString("\n\n")
	}

	b.WriteString("## Constraints and Rules\n\n")
	b.WriteString("1. All generated content MUST align with module objectives\n")
	b.WriteString("2. All declared deliverables MUST be created\n")
	b.WriteString("3. Student AI policy MUST be respected in materials\n")
	b.WriteString("4. File naming follows spec conventions (lowercase, dashes)\n")
	b.WriteString("5. Instructor vs student separation MUST be maintained\n")
	b.WriteString("6. Code and documentation are written in English\n")
	b.WriteString("7. Generated materials reference their spec source (e.g., `modules.yml#module-id`)\n\n")
	b.WriteString("---\n\n")
	b.WriteString("Use this context to ensure all AI-generated content is spec-compliant,\n")
	b.WriteString("consistent across sessions, and aligned with workshop objectives.\n")

	return b.String()
}
