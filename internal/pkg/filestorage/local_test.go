package filestorage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBytesAndGetFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080")
	require.NoError(t, err)

	accessible, err := storage.SaveBytes([]byte("%PDF-1.4 test"), "certificates", "CERT-20250815-0001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/certificates/CERT-20250815-0001.pdf", accessible)

	physical := storage.GetFullPath(accessible)
	assert.Equal(t, filepath.Join(dir, "certificates", "CERT-20250815-0001.pdf"), physical)

	content, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(content))
}

func TestSaveBytesWithoutBaseURL(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	accessible, err := storage.SaveBytes([]byte("data"), "receipts", "RCP-2025-00001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "uploads/receipts/RCP-2025-00001.pdf", accessible)
}

func TestGetFullPathRejectsTraversal(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	assert.Empty(t, storage.GetFullPath("http://localhost:8080/uploads/../../etc/passwd"))
	assert.Empty(t, storage.GetFullPath(""))
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080")
	require.NoError(t, err)

	accessible, err := storage.SaveBytes([]byte("data"), "photos", "photo.jpg")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(accessible))
	_, statErr := os.Stat(filepath.Join(dir, "photos", "photo.jpg"))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting a missing file is a no-op
	assert.NoError(t, storage.DeleteFile(accessible))
	assert.NoError(t, storage.DeleteFile(""))
}
