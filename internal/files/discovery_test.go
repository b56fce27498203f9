package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFindJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "hotel-lucerna.json", "{}")
	writeFixture(t, dir, "hotel-caesars.json", "{}")
	writeFixture(t, dir, "notes.txt", "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	d := NewDiscovery(dir)
	found, err := d.FindJSONFiles(".")
	require.NoError(t, err)

	require.Len(t, found, 2)
	// Sorted by name for stable ordering.
	assert.Equal(t, "hotel-caesars.json", found[0].Name)
	assert.Equal(t, "hotel-lucerna.json", found[1].Name)
}

func TestFindJSONFiles_MissingDirectory(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindJSONFiles("does-not-exist")
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "comparison_2024-05-01.csv", "a")
	writeFixture(t, dir, "comparison_2024-05-02.csv", "b")
	writeFixture(t, dir, "insights_2024-05-01.csv", "c")

	d := NewDiscovery(dir)
	found, err := d.FindFilesByPattern(".", "comparison_*.csv")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "old.json", ModTime: now.Add(-2 * time.Hour)},
		{Name: "newest.json", ModTime: now},
		{Name: "mid.json", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "newest.json", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}

func TestFilterFilesByDateRange(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "in.json", ModTime: now.Add(-time.Hour)},
		{Name: "out.json", ModTime: now.Add(-48 * time.Hour)},
	}

	filtered := FilterFilesByDateRange(files, now.Add(-2*time.Hour), now)
	require.Len(t, filtered, 1)
	assert.Equal(t, "in.json", filtered[0].Name)
}
