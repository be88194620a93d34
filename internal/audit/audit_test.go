package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecord(t *testing.T) {
	dir := t.TempDir()
	log := NewLog(dir)
	log.now = fixedClock(time.Date(2026, 8, 26, 14, 30, 5, 0, time.UTC))

	id, err := log.Record(Entry{
		Kind:          KindPlan,
		Goal:          "Add a Quiz Module",
		DigestText:    "# Workshop Specification Context\n",
		BackendOutput: "# Plan\n",
		Result:        map[string]string{"spec_hash": "abc123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-26T14-30-05-add-a-quiz-module", id)

	entryDir := filepath.Join(dir, id)
	for _, name := range []string{"prelude.txt", "prompt.json", "response.txt", "result.json"} {
		_, statErr := os.Stat(filepath.Join(entryDir, name))
		assert.NoError(t, statErr, name)
	}

	prelude, err := os.ReadFile(filepath.Join(entryDir, "prelude.txt"))
	require.NoError(t, err)
	assert.Equal(t, "# Workshop Specification Context\n", string(prelude))

	var prompt map[string]string
	data, err := os.ReadFile(filepath.Join(entryDir, "prompt.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &prompt))
	assert.Equal(t, map[string]string{"operation": "plan", "goal": "Add a Quiz Module"}, prompt)

	var result map[string]string
	data, err = os.ReadFile(filepath.Join(entryDir, "result.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "abc123", result["spec_hash"])
}

func TestRecordEntriesSortChronologically(t *testing.T) {
	dir := t.TempDir()
	log := NewLog(dir)

	log.now = fixedClock(time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC))
	first, err := log.Record(Entry{Kind: KindPlan, Goal: "early"})
	require.NoError(t, err)

	log.now = fixedClock(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))
	second, err := log.Record(Entry{Kind: KindApply, Goal: "late"})
	require.NoError(t, err)

	assert.Less(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
