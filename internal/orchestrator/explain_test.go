package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workshopforge/workshopforge/internal/backend"
)

func TestExplain(t *testing.T) {
	o := New(testSpec(), backend.NewEcho(), Options{BaseDir: t.TempDir()})

	t.Run("deliverable path", func(t *testing.T) {
		e := o.Explain("labs/setup/README.md")
		require.True(t, e.Referenced)
		require.Len(t, e.Modules, 1)
		assert.Equal(t, "setup", e.Modules[0].ModuleID)
		assert.Equal(t, "Install the toolchain", e.Modules[0].Objective)
		assert.Contains(t, e.Areas, "student-facing lab exercise")
	})

	t.Run("instructor path", func(t *testing.T) {
		e := o.Explain("instructor/slides/slides.md")
		assert.True(t, e.Referenced)
		assert.Empty(t, e.Modules)
		require.Len(t, e.Areas, 1)
		assert.Contains(t, e.Areas[0], "instructor-only")
	})

	t.Run("reference path", func(t *testing.T) {
		e := o.Explain("reference/setup/solution.go")
		assert.True(t, e.Referenced)
		require.Len(t, e.Areas, 1)
		assert.Contains(t, e.Areas[0], "reference solutions")
	})

	t.Run("unknown path", func(t *testing.T) {
		e := o.Explain("docs/random.md")
		assert.False(t, e.Referenced)
		assert.Contains(t, e.Summary(), "not directly referenced")
	})

	t.Run("normalizes separators", func(t *testing.T) {
		e := o.Explain(`labs\setup\README.md`)
		assert.True(t, e.Referenced)
		require.Len(t, e.Modules, 1)
	})
}

func TestExplanationSummary(t *testing.T) {
	o := New(testSpec(), backend.NewEcho(), Options{BaseDir: t.TempDir()})

	s := o.Explain("labs/setup/README.md").Summary()
	assert.Contains(t, s, "# Explanation for `labs/setup/README.md`")
	assert.Contains(t, s, "module `setup`")
	assert.Contains(t, s, "student-facing lab exercise")
}
