package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_notifications.sql", "001_init.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o755))

	files, err := pendingFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_notifications.sql"}, files)
}

func TestPendingFilesMissingDirectory(t *testing.T) {
	_, err := pendingFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("migrations/001_init.sql"))
	assert.Equal(t, "010", versionOf("010_add_index.sql"))
	assert.Equal(t, "plain.sql", versionOf("plain.sql"))
}
