package app

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// PathResolver looks up a bare executable name on the search path.
type PathResolver interface {
	LookPath(name string) (string, error)
}

type osPathResolver struct{}

func (osPathResolver) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// resolveExecutable returns the canonical path of pathOrName, or "" when it
// cannot be resolved.
func resolveExecutable(resolver PathResolver, pathOrName string) string {
	pathOrName = strings.TrimSpace(pathOrName)
	if pathOrName == "" {
		return ""
	}

	candidate := pathOrName
	if isBareName(pathOrName) {
		if resolver == nil {
			resolver = osPathResolver{}
		}
		found, err := resolver.LookPath(pathOrName)
		if err != nil || found == "" {
			return ""
		}
		candidate = found
	}

	return canonicalize(candidate)
}

func isBareName(p string) bool {
	return !strings.ContainsRune(p, '/') && !strings.ContainsRune(p, filepath.Separator)
}

func canonicalize(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ""
	}
	return resolved
}
