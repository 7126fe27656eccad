package vpath

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeNameChars   = regexp.MustCompile(`[^\w\-.]`)
	unsafeMemberChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	slugSeparators    = regexp.MustCompile(`[^A-Za-z0-9-]+`)
)

// SanitizeName reduces a file or folder name to a single safe path segment:
// path separators and special characters become underscores. An empty result
// means the input carried no usable characters at all.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	return name
}

// SanitizeMemberName derives a member directory name from a username.
// Anything outside [A-Za-z0-9_-] is stripped; an empty result falls back to
// a numeric identity-based name so two different identities can never map to
// the same directory.
func SanitizeMemberName(username string, id int64) string {
	clean := unsafeMemberChars.ReplaceAllString(username, "")
	if clean == "" {
		clean = fmt.Sprintf("user_%d", id)
	}
	return clean
}

// Slugify derives a category slug from a display name: lowercase, with runs
// of non-alphanumeric characters collapsed to single hyphens.
func Slugify(name string) string {
	slug := slugSeparators.ReplaceAllString(strings.TrimSpace(name), "-")
	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}
