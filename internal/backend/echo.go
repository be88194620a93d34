package backend

import (
	"context"
	"fmt"
	"strings"
)

// Echo is a deterministic local backend for offline use and tests. It
// restates the request instead of calling a model, so identical inputs
// always produce identical output.
type Echo struct{}

// NewEcho creates the echo backend.
func NewEcho() *Echo {
	return &Echo{}
}

// Name returns the backend identifier.
func (e *Echo) Name() string { return "echo" }

// Complete produces a deterministic restatement of the message sequence.
func (e *Echo) Complete(_ context.Context, messages []Message, _ Options) (string, error) {
	var goal string
	contextLines := 0
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			goal = m.Content
		case RoleSystem:
			contextLines = strings.Count(m.Content, "\n") + 1
		}
	}

	var b strings.Builder
	b.WriteString("# Plan (echo backend)\n\n")
	fmt.Fprintf(&b, "Goal: %s\n\n", goal)
	fmt.Fprintf(&b, "Context received: %d lines of specification summary.\n\n", contextLines)
	b.WriteString("The echo backend does not generate content. It confirms the\n")
	b.WriteString("prompt assembly and returns deterministically, which makes it\n")
	b.WriteString("suitable for dry runs and automated tests.\n")
	return b.String(), nil
}
