package vpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Root binds an identity tag to a canonical physical directory. Every
// operation performed through a service bound to a Root must resolve inside
// Dir; protected names mark top-level entries that are immune to delete and
// rename.
type Root struct {
	Tag       string
	Dir       string
	protected map[string]bool
}

// NewRoot canonicalizes dir (which must exist) and returns a Root with the
// given protected top-level names.
func NewRoot(tag, dir string, protectedNames []string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", dir, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("canonicalize root %q: %w", dir, err)
	}

	protected := make(map[string]bool, len(protectedNames))
	for _, name := range protectedNames {
		protected[name] = true
	}

	return &Root{Tag: tag, Dir: canonical, protected: protected}, nil
}

// IsProtected reports whether the given normalized relative path is the root
// itself or lives under a protected top-level name.
func (r *Root) IsProtected(rel string) bool {
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return true
	}
	first := rel
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		first = rel[:idx]
	}
	return r.protected[first]
}

// ProtectedNames returns the protected top-level entry names.
func (r *Root) ProtectedNames() []string {
	names := make([]string, 0, len(r.protected))
	for name := range r.protected {
		names = append(names, name)
	}
	return names
}
