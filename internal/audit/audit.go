// Package audit writes the append-only operation trail.
//
// Every plan and apply produces one entry: a uniquely named directory
// holding the full digest text, the prompt, the raw backend response, and
// the structured result. Entries are never rewritten, which makes the trail
// tamper-evident in the sense that reconstructing "why did the orchestrator
// decide X" only requires reading files that nothing ever mutates. The
// orchestrator itself never reads entries back.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/workshopforge/workshopforge/internal/sanitize"
)

// Operation kinds recorded in the trail.
const (
	KindPlan  = "plan"
	KindApply = "apply"
)

// Entry is one operation's full forensic record.
type Entry struct {
	Kind          string
	Goal          string
	DigestText    string
	BackendOutput string

	// Result is the structured operation result; it is serialized to JSON
	// inside the entry.
	Result any
}

// Log appends entries under a log root directory.
type Log struct {
	root string
	now  func() time.Time
}

// NewLog creates a log rooted at dir.
func NewLog(dir string) *Log {
	return &Log{root: dir, now: time.Now}
}

// Root returns the log root directory.
func (l *Log) Root() string { return l.root }

// Record writes a new entry and returns its ID (the entry directory name).
//
// Entries are keyed by UTC timestamp plus a sanitized slug of the goal so
// they sort chronologically and stay human-identifiable. Two operations
// with the same goal slug starting within the same second share a
// directory; that collision is an accepted limitation.
func (l *Log) Record(e Entry) (string, error) {
	id := fmt.Sprintf("%s-%s", l.now().UTC().Format("2006-01-02T15-04-05"), sanitize.Slug(e.Goal))
	dir := filepath.Join(l.root, id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create audit entry: %w", err)
	}

	prompt := map[string]string{"operation": e.Kind, "goal": e.Goal}
	promptJSON, err := json.MarshalIndent(prompt, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prompt: %w", err)
	}
	resultJSON, err := json.MarshalIndent(e.Result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	files := map[string][]byte{
		"prelude.txt":  []byte(e.DigestText),
		"prompt.json":  promptJSON,
		"response.txt": []byte(e.BackendOutput),
		"result.json":  resultJSON,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return "", fmt.Errorf("write audit entry %s: %w", name, err)
		}
	}
	return id, nil
}
