package policy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Content density limits for rendered presentation material, derived from
// cognitive-load research: working memory holds 3-5 items, and long code
// listings defeat chunking. The limits appear in violation messages so
// failures are self-explanatory.
const (
	// MaxCodeLines is the largest code block a single slide may carry.
	MaxCodeLines = 12

	// MaxBullets is the most bullet points a single slide may carry.
	MaxBullets = 5

	// MaxContentLines is the total content-line budget per slide.
	MaxContentLines = 15
)

// SlideContentRule checks rendered slides against the content density
// limits. Unreadable material defeats the product's purpose, so findings
// are error severity.
type SlideContentRule struct{}

// NewSlideContentRule creates the slide content quality rule.
func NewSlideContentRule() *SlideContentRule {
	return &SlideContentRule{}
}

// ID returns the rule identifier.
func (r *SlideContentRule) ID() string { return "slide-content-quality" }

// Check scans instructor/slides/*.md under the target.
func (r *SlideContentRule) Check(_ context.Context, pc *Context) ([]Violation, error) {
	if !pc.TargetExists() {
		return nil, nil
	}
	slidesDir := filepath.Join(pc.TargetDir, "instructor", "slides")
	if info, err := os.Stat(slidesDir); err != nil || !info.IsDir() {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(slidesDir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var violations []Violation
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		rel, relErr := filepath.Rel(pc.TargetDir, path)
		if relErr != nil {
			rel = path
		}
		for _, f := range checkSlideFile(strings.Split(string(data), "\n")) {
			violations = append(violations, Violation{
				RuleID:   r.ID(),
				Severity: SeverityError,
				Message:  f.message,
				Path:     fmt.Sprintf("%s:%d", rel, f.line),
			})
		}
	}
	return violations, nil
}

// finding is an intra-file density finding before it becomes a Violation.
type finding struct {
	line    int
	message string
}

// checkSlideFile runs all density checks over the lines of one slide deck.
// Slides are separated by "---" lines; line numbers are 1-based.
func checkSlideFile(lines []string) []finding {
	var findings []finding
	findings = append(findings, checkCodeBlocks(lines)...)
	findings = append(findings, checkBullets(lines)...)
	findings = append(findings, checkContentBudget(lines)...)
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].line < findings[j].line })
	return findings
}

// checkCodeBlocks flags fenced code blocks longer than MaxCodeLines.
func checkCodeBlocks(lines []string) []finding {
	var findings []finding
	inCode := false
	codeStart := 0
	codeLines := 0

	for i, line := range lines {
		n := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inCode {
				inCode = true
				codeStart = n
				codeLines = 0
			} else {
				inCode = false
				if codeLines > MaxCodeLines {
					findings = append(findings, finding{
						line: codeStart,
						message: fmt.Sprintf(
							"Code block has %d lines (max %d). Split into multiple slides with (1/2), (2/2) notation.",
							codeLines, MaxCodeLines),
					})
				}
			}
		} else if inCode {
			codeLines++
		}
	}
	return findings
}

// bulletPrefixes mark a line as a bullet point.
var bulletPrefixes = []string{"- ", "* ", "+ "}

// checkBullets flags slides with more than MaxBullets bullet points.
func checkBullets(lines []string) []finding {
	var findings []finding
	bullets := 0
	slideStart := 1

	flush := func() {
		if bullets > MaxBullets {
			findings = append(findings, finding{
				line: slideStart,
				message: fmt.Sprintf(
					"Slide has %d bullet points (max %d). Split content across multiple slides.",
					bullets, MaxBullets),
			})
		}
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "---" {
			flush()
			bullets = 0
			slideStart = i + 2
			continue
		}
		for _, p := range bulletPrefixes {
			if strings.HasPrefix(stripped, p) {
				bullets++
				break
			}
		}
	}
	flush()
	return findings
}

// checkContentBudget flags slides whose total content lines exceed
// MaxContentLines. Headers, blank lines, and fence markers don't count.
func checkContentBudget(lines []string) []finding {
	var findings []finding
	content := 0
	slideStart := 1
	inCode := false

	flush := func() {
		if content > MaxContentLines {
			findings = append(findings, finding{
				line: slideStart,
				message: fmt.Sprintf(
					"Slide has %d content lines (max %d). Split into multiple slides.",
					content, MaxContentLines),
			})
		}
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "---" {
			flush()
			content = 0
			slideStart = i + 2
			inCode = false
			continue
		}
		if strings.HasPrefix(stripped, "```") {
			inCode = !inCode
			continue
		}
		if stripped != "" && !strings.HasPrefix(stripped, "#") {
			content++
		}
	}
	flush()
	return findings
}
