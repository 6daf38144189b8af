package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFormat(t *testing.T) {
	valid := map[string][]string{
		"in":  {"sample.mzML", "SAMPLE.MZML", "run1.mzXML", "/data/spectra.mgf", "a.b.mzdata"},
		"out": {"result.tsv", "result.CSV", "out/dir/result.txt"},
	}
	for option, paths := range valid {
		exts := spectraFormats
		if option == "out" {
			exts = resultFormats
		}
		for _, p := range paths {
			assert.NoError(t, checkFormat(option, p, exts), "%s %q", option, p)
		}
	}

	invalid := []struct {
		option string
		path   string
		exts   []string
	}{
		{"in", "sample.raw", spectraFormats},
		{"in", "mzML", spectraFormats},
		{"in", "sample.mzML.gz", spectraFormats},
		{"out", "result.xlsx", resultFormats},
		{"out", "result", resultFormats},
	}
	for _, tt := range invalid {
		err := checkFormat(tt.option, tt.path, tt.exts)
		require.ErrorIs(t, err, ErrInvalidFormat, "%s %q", tt.option, tt.path)
		assert.Contains(t, err.Error(), "-"+tt.option)
	}
}

func TestFormatPattern(t *testing.T) {
	assert.Equal(t, "*.{csv,tsv,txt}", formatPattern(resultFormats))
	assert.Equal(t, "*.{mzxml,mgf,mzml,mzdata}", formatPattern(spectraFormats))
}

func TestInspectDatabase(t *testing.T) {
	db := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(db, "mols", "nrp"), 0o755))
	for _, name := range []string{"mols/a.mol", "mols/nrp/b.mol", "mols/nrp/C.MOL", "mols/readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(db, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(db, libraryInfoName), []byte("mols/a.mol a 1\n"), 0o644))

	summary, err := inspectDatabase(db)
	require.NoError(t, err)
	assert.True(t, summary.exists)
	assert.True(t, summary.libraryInfo)
	assert.Equal(t, 3, summary.structures)
}

func TestInspectDatabaseMissingOrFile(t *testing.T) {
	summary, err := inspectDatabase(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.False(t, summary.exists)

	file := filepath.Join(t.TempDir(), "library.info")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = inspectDatabase(file)
	require.Error(t, err)
}
