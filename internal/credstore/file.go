package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// FileStore implements Store using an AES-256-GCM encrypted file. It is
// the fallback for environments where no OS keyring is available (WSL,
// headless, Docker).
type FileStore struct {
	path string
	key  []byte
}

// lockTimeout bounds how long a FileStore operation waits for the
// cross-process file lock.
const lockTimeout = 10 * time.Second

// NewFileStore creates a file-backed credential store at path. An empty
// path uses the default location under the XDG data directory. If
// password is empty, the key is derived from a machine-specific default
// (less secure, prints a one-time warning).
func NewFileStore(path, password string) (*FileStore, error) {
	if path == "" {
		path = filepath.Join(xdg.DataHome, "creds", "credentials.enc")
	}

	var key []byte
	if password == "" {
		// Machine-specific default (less secure than a user-provided password)
		hostname, _ := os.Hostname()
		username := os.Getenv("USER")
		if username == "" {
			username = os.Getenv("USERNAME") // Windows fallback
		}
		machineID := fmt.Sprintf("%s@%s", username, hostname)
		hash := sha256.Sum256([]byte(machineID))
		key = hash[:]
		warnOnce("WARNING: Using machine-specific encryption key. For better security, set a password via CREDS_STORE_PASSWORD env var.")
	} else {
		// Derive key from password using sha256 (simple for v1)
		// TODO: Replace with scrypt or argon2 for better security
		hash := sha256.Sum256([]byte(password))
		key = hash[:]
	}

	// Create parent directory with 0700 permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	return &FileStore{
		path: path,
		key:  key,
	}, nil
}

// lock acquires the cross-process file lock guarding the credential
// file. Concurrent processes would otherwise lose writes in the
// read-modify-write cycle.
func (s *FileStore) lock() (*flock.Flock, error) {
	lock := flock.New(s.path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock: timeout")
	}
	return lock, nil
}

// encrypt encrypts plaintext using AES-256-GCM with a random 12-byte nonce.
// The nonce is prepended to the ciphertext.
func (s *FileStore) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt decrypts ciphertext that was encrypted with encrypt().
// Extracts the nonce from the first 12 bytes.
func (s *FileStore) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// readEntries decrypts and parses the credential file.
// Returns an empty map if the file doesn't exist.
func (s *FileStore) readEntries() (map[string][]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]byte), nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if len(data) == 0 {
		return make(map[string][]byte), nil
	}

	plaintext, err := s.decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var entries map[string][]byte
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return entries, nil
}

// writeEntries encrypts and writes the credential map to disk.
func (s *FileStore) writeEntries(entries map[string][]byte) error {
	plaintext, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	ciphertext, err := s.encrypt(plaintext)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// Save stores value under key in the encrypted file. The map write is a
// plain replace, so the file backend has no delete/insert gap.
func (s *FileStore) Save(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	lock, err := s.lock()
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	defer lock.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}

	entries[key] = value
	if err := s.writeEntries(entries); err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load retrieves a credential by key from the encrypted file.
func (s *FileStore) Load(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	lock, err := s.lock()
	if err != nil {
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}
	defer lock.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}

	value, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// Delete removes a credential from the encrypted file. Deleting a key
// that was never stored succeeds without touching the file.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	lock, err := s.lock()
	if err != nil {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	defer lock.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}

	if _, ok := entries[key]; !ok {
		return nil
	}

	delete(entries, key)
	if err := s.writeEntries(entries); err != nil {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
