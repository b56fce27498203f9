package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratepulse/internal/config"
)

func testPaths(t *testing.T) *config.PathsConfig {
	t.Helper()
	base := t.TempDir()
	return &config.PathsConfig{
		DataDir:       base,
		SnapshotsDir:  filepath.Join(base, "snapshots"),
		UserRatesFile: filepath.Join(base, "user_rates.json"),
		ReportsDir:    filepath.Join(base, "reports"),
		LogsDir:       filepath.Join(base, "logs"),
	}
}

func TestManager_WriteAndReadFile(t *testing.T) {
	m := NewManager(testPaths(t))

	require.NoError(t, m.WriteFile("user_rates.json", []byte(`[]`)))
	assert.True(t, m.FileExists("user_rates.json"))

	data, err := m.ReadFile("user_rates.json")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	size, err := m.GetFileSize("user_rates.json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}

func TestManager_ResolvesPrefixedPaths(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	require.NoError(t, m.WriteFile("snapshots/hotel.json", []byte(`{}`)))
	assert.FileExists(t, filepath.Join(paths.SnapshotsDir, "hotel.json"))

	require.NoError(t, m.WriteFile("reports/out.csv", []byte("a,b\n")))
	assert.FileExists(t, filepath.Join(paths.ReportsDir, "out.csv"))
}

func TestManager_EnsureDirectoryAndList(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	require.NoError(t, m.EnsureDirectory("snapshots"))
	require.NoError(t, os.WriteFile(filepath.Join(paths.SnapshotsDir, "a.json"), []byte(`{}`), 0644))

	names, err := m.ListFiles("snapshots")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, names)
}

func TestManager_DeleteFile(t *testing.T) {
	m := NewManager(testPaths(t))

	require.NoError(t, m.WriteFile("tmp.json", []byte(`{}`)))
	require.NoError(t, m.DeleteFile("tmp.json"))
	assert.False(t, m.FileExists("tmp.json"))
}
