package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreDbBackupKeepsExistingFile(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "hospital.db")
	require.NoError(t, os.WriteFile(existing, []byte("local data"), 0600))

	gStorage = nil
	dbFilePath = existing

	// a db file already on disk is never overwritten by a restore
	restoreDbBackup()

	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "local data", string(content))
}

func TestRestoreDbBackupWithoutStorageClient(t *testing.T) {
	gStorage = nil
	dbFilePath = filepath.Join(t.TempDir(), "hospital.db")

	restoreDbBackup()

	assert.NoFileExists(t, dbFilePath)
}
