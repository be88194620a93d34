package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/workshopforge/workshopforge/internal/policy"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printViolations renders violations to stderr, errors first.
func printViolations(violations []policy.Violation) {
	for _, v := range violations {
		if v.Severity == policy.SeverityError {
			printViolation(v)
		}
	}
	for _, v := range violations {
		if v.Severity == policy.SeverityWarn {
			printViolation(v)
		}
	}
}

func printViolation(v policy.Violation) {
	label := warnStyle.Render("WARN ")
	if v.Severity == policy.SeverityError {
		label = errorStyle.Render("ERROR")
	}
	loc := ""
	if v.Path != "" {
		loc = dimStyle.Render(" (" + v.Path + ")")
	}
	fmt.Fprintf(os.Stderr, "%s [%s] %s%s\n", label, v.RuleID, v.Message, loc)
}

// splitRuleList parses a comma-separated rule ID list, dropping empties.
func splitRuleList(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
