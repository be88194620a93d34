// Package sanitize provides shared string sanitization for filesystem names.
//
// Audit log entries and generated files derive their names from free-text
// user goals; everything that becomes part of a path goes through Slug first.
package sanitize

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// MaxSlugLength caps slug length so audit entry names stay readable.
	MaxSlugLength = 30

	// hashSuffixLength is "-" plus an 8-char hash.
	hashSuffixLength = 9

	// DefaultSlug is used when sanitization produces an empty result.
	DefaultSlug = "untitled"
)

// Slug converts a string to a safe filename component.
//
// Rules applied:
//   - lowercases
//   - spaces and underscores become dashes
//   - everything outside [a-z0-9-] is dropped
//   - runs of dashes collapse, leading/trailing dashes are trimmed
//   - results longer than MaxSlugLength are truncated with a hash suffix
//   - empty results become DefaultSlug
func Slug(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return DefaultSlug
	}
	if len(slug) > MaxSlugLength {
		slug = truncateWithHash(slug)
	}
	return slug
}

// truncateWithHash shortens a slug to MaxSlugLength, appending a hash of the
// original to keep long goals that share a prefix distinguishable.
func truncateWithHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	suffix := "-" + hex.EncodeToString(sum[:])[:hashSuffixLength-1]

	truncated := strings.TrimRight(s[:MaxSlugLength-hashSuffixLength], "-")
	return truncated + suffix
}
