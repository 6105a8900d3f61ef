package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	first, err := NewFileStore(path, "pw")
	require.NoError(t, err)
	require.NoError(t, first.Save("token", []byte("abc123")))

	// A fresh instance with the same password sees the entry
	second, err := NewFileStore(path, "pw")
	require.NoError(t, err)

	got, err := second.Load("token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc123"), got)
}

func TestFileStoreWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	store, err := NewFileStore(path, "correct")
	require.NoError(t, err)
	require.NoError(t, store.Save("k", []byte("v")))

	other, err := NewFileStore(path, "wrong")
	require.NoError(t, err)

	_, err = other.Load("k")
	require.Error(t, err)
	// A decryption failure must not masquerade as a missing entry
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	require.NoError(t, os.WriteFile(path, []byte("not ciphertext"), 0600))

	store, err := NewFileStore(path, "pw")
	require.NoError(t, err)

	_, err = store.Load("k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.enc"), "pw")
	require.NoError(t, err)

	_, err = store.Load("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	store, err := NewFileStore(path, "pw")
	require.NoError(t, err)
	require.NoError(t, store.Save("k", []byte("v")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreEncryptDecryptRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.enc"), "pw")
	require.NoError(t, err)

	plaintext := []byte("some secret material")
	ciphertext, err := store.encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := store.decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestFileStoreDecryptShortCiphertext(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.enc"), "pw")
	require.NoError(t, err)

	_, err = store.decrypt([]byte{0x01, 0x02})
	assert.Error(t, err)
}
