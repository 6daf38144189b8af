package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DEREPLICATOR_EXECUTABLE", "")
	t.Setenv("DEREPLICATOR_TMP_DIR", "")
	t.Setenv("DEREPLICATOR_DEBUG", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultExecutable, cfg.Executable)
	assert.Empty(t, cfg.TmpDir)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	tmp := t.TempDir()
	t.Setenv("DEREPLICATOR_EXECUTABLE", " /opt/npdtools/bin/dereplicator.py ")
	t.Setenv("DEREPLICATOR_TMP_DIR", tmp)
	t.Setenv("DEREPLICATOR_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/npdtools/bin/dereplicator.py", cfg.Executable)
	assert.Equal(t, tmp, cfg.TmpDir)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("DEREPLICATOR_DEBUG", "sometimes")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DEREPLICATOR_DEBUG", "")
	t.Setenv("DEREPLICATOR_TMP_DIR", "relative/tmp")
	_, err = Load()
	require.Error(t, err)
}
