package hooks

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Scope gates the hook to a directory prefix and derives unit directories
// from paths inside it.
type Scope struct {
	root    string
	pattern *regexp.Regexp
}

// NewScope returns a Scope for root. The root is normalized to forward
// slashes without a leading "./" and with exactly one trailing slash.
func NewScope(root string) Scope {
	root = strings.TrimPrefix(filepath.ToSlash(root), "./")
	root = strings.TrimRight(root, "/") + "/"

	return Scope{
		root:    root,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(root) + `([^/]+)`),
	}
}

// Root returns the normalized scope root, e.g. "skills/".
func (s Scope) Root() string {
	return s.root
}

// Contains reports whether path starts with the scope root.
func (s Scope) Contains(path string) bool {
	return strings.HasPrefix(path, s.root)
}

// UnitDir returns the scope root joined with the first path segment below
// it, e.g. "skills/dune" for "skills/dune/references/x.md".
func (s Scope) UnitDir(path string) (string, bool) {
	match := s.pattern.FindStringSubmatch(path)
	if match == nil {
		return "", false
	}
	return s.root + match[1], true
}

// RelativePath strips cwd from the front of path when it is a literal
// prefix, along with at most one separator right after it. An empty cwd
// leaves path untouched.
func RelativePath(path, cwd string) string {
	if cwd == "" || !strings.HasPrefix(path, cwd) {
		return path
	}

	rest := path[len(cwd):]
	if strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, string(os.PathSeparator)) {
		rest = rest[1:]
	}
	return rest
}
