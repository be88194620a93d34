package generate

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultRedactions are always excluded from student packs regardless of
// what the profile declares.
var DefaultRedactions = []string{"instructor/**", "reference/**"}

// Promote copies the instructor repository at srcDir into destDir, skipping
// every path matched by a redaction pattern. Patterns ending in "/**"
// exclude an entire subtree; other patterns match the slash-separated
// relative path or the file name. DefaultRedactions apply in addition to
// extra. It returns the relative paths copied, in walk order.
func Promote(srcDir, destDir string, extra []string) ([]string, error) {
	patterns := append(append([]string{}, DefaultRedactions...), extra...)

	var copied []string
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if redacted(rel, patterns) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("promote: %w", err)
	}
	return copied, nil
}

// redacted reports whether the relative path matches any pattern.
func redacted(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
