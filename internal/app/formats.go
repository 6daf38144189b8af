package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	spectraFormats = []string{"mzXML", "MGF", "mzML", "mzdata"}
	resultFormats  = []string{"csv", "tsv", "txt"}
)

const (
	structurePattern = "**/*.mol"
	libraryInfoName  = "library.info"
)

func formatPattern(exts []string) string {
	lowered := make([]string, len(exts))
	for i, ext := range exts {
		lowered[i] = strings.ToLower(ext)
	}
	return "*.{" + strings.Join(lowered, ",") + "}"
}

// checkFormat compares the extension of path against exts, ignoring case.
// Only the name is inspected.
func checkFormat(option, path string, exts []string) error {
	base := strings.ToLower(filepath.Base(path))
	ok, err := doublestar.Match(formatPattern(exts), base)
	if err != nil {
		return fmt.Errorf("invalid format pattern: %w", err)
	}
	if !ok {
		return &ConfigError{
			Kind:   ErrInvalidFormat,
			Option: option,
			Detail: fmt.Sprintf("%q (expected one of %s)", path, strings.Join(exts, ", ")),
		}
	}
	return nil
}

func validateFormats(req Request) error {
	if err := checkFormat("in", req.SpectraPath, spectraFormats); err != nil {
		return err
	}
	return checkFormat("out", req.OutputPath, resultFormats)
}

type databaseSummary struct {
	exists      bool
	structures  int
	libraryInfo bool
}

// inspectDatabase inspects the database directory without failing the run.
func inspectDatabase(dir string) (databaseSummary, error) {
	var summary databaseSummary
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return summary, nil
		}
		return summary, err
	}
	if !info.IsDir() {
		return summary, fmt.Errorf("database %q is not a directory", dir)
	}
	summary.exists = true

	// Structure names are matched ignoring case, like the format checks.
	err = doublestar.GlobWalk(os.DirFS(dir), "**", func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		ok, err := doublestar.Match(structurePattern, strings.ToLower(path))
		if err != nil {
			return err
		}
		if ok {
			summary.structures++
		}
		return nil
	}, doublestar.WithFailOnIOErrors())
	if err != nil {
		return summary, fmt.Errorf("scan database %q: %w", dir, err)
	}

	if _, err := os.Stat(filepath.Join(dir, libraryInfoName)); err == nil {
		summary.libraryInfo = true
	}
	return summary, nil
}
