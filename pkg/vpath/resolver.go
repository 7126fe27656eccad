package vpath

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// TraversalError is returned when a virtual path would escape its sandbox
// root. It is always fatal to the request that carried the path.
type TraversalError struct {
	Path string
}

func (e TraversalError) Error() string {
	return "path traversal detected"
}

var drivePrefix = regexp.MustCompile(`^[A-Za-z]:`)

// Normalize validates a caller-supplied virtual path and returns its
// canonical relative form (forward slashes, no empty/dot segments).
// It fails with TraversalError for absolute paths, drive prefixes,
// backslashes, and any "." or ".." segment.
func Normalize(virtual string) (string, error) {
	if virtual == "" {
		return "", nil
	}
	if strings.ContainsRune(virtual, '\\') || strings.ContainsRune(virtual, '\x00') {
		return "", TraversalError{Path: virtual}
	}
	if strings.HasPrefix(virtual, "/") || drivePrefix.MatchString(virtual) {
		return "", TraversalError{Path: virtual}
	}

	var segments []string
	for _, seg := range strings.Split(virtual, "/") {
		switch seg {
		case "":
			continue
		case ".", "..":
			return "", TraversalError{Path: virtual}
		}
		segments = append(segments, seg)
	}
	return strings.Join(segments, "/"), nil
}

// Resolve normalizes virtual against root and returns the absolute physical
// path. Symlinks are resolved at the OS level and the canonical result is
// re-verified to be a path-component descendant of the root, so a symlink
// planted anywhere in the tree cannot reach out of it. For targets that do
// not exist yet, the deepest existing ancestor is canonicalized before the
// missing suffix is re-appended, closing the hole where a symlinked parent
// would let a new file land outside the root. Must run before every
// filesystem read or mutation.
func Resolve(root *Root, virtual string) (string, error) {
	rel, err := Normalize(virtual)
	if err != nil {
		return "", err
	}
	if rel == "" {
		return root.Dir, nil
	}

	abs := filepath.Join(root.Dir, filepath.FromSlash(rel))
	if err := verifyWithin(root.Dir, abs); err != nil {
		return "", TraversalError{Path: virtual}
	}

	canonical, err := canonicalize(abs)
	if err != nil {
		return "", err
	}
	if err := verifyWithin(root.Dir, canonical); err != nil {
		return "", TraversalError{Path: virtual}
	}
	return canonical, nil
}

// canonicalize resolves symlinks in abs. When abs (or a parent) does not
// exist, the walk moves up to the deepest existing ancestor, canonicalizes
// that, and re-appends the nonexistent suffix; suffix components cannot be
// symlinks because they do not exist.
func canonicalize(abs string) (string, error) {
	suffix := ""
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(current), suffix)
		current = parent
	}
}

// verifyWithin checks that candidate is root or a path-component descendant
// of root. filepath.Rel is used instead of a string prefix so that
// "/root-evil" never passes for "/root".
func verifyWithin(root, candidate string) error {
	rel, err := filepath.Rel(root, candidate)
	if err != nil {
		return err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return TraversalError{Path: candidate}
	}
	return nil
}
