package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("CALPICK_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLogDirAndOptionsPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALPICK_DATA_DIR", dir)

	logDir, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs"), logDir)
	assert.DirExists(t, logDir)

	path, err := DefaultOptionsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, OptionsFileName), path)
	assert.NoFileExists(t, path)
}
