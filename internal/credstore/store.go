// Package credstore stores credentials in the platform secure store.
// Values are opaque bytes keyed by a caller-chosen identifier; text
// credentials go through the SaveString/LoadString conveniences.
package credstore

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Store is the interface for credential storage. Keys are not
// enumerable through this interface.
type Store interface {
	// Save stores value under key, replacing any existing entry.
	Save(key string, value []byte) error
	// Load returns the stored bytes for key, or ErrNotFound.
	Load(key string) ([]byte, error)
	// Delete removes the entry for key. Deleting a missing key is not
	// an error.
	Delete(key string) error
}

// ServiceName is the default service identifier used to namespace
// entries in the platform store.
const ServiceName = "creds"

var (
	// ErrNotFound is returned by Load when no entry exists for the key.
	ErrNotFound = errors.New("credential not found")

	// ErrDuplicate is reserved for backends that refuse to insert over an
	// existing entry. Save always clears the previous entry before
	// inserting, so no current backend returns it; it exists so callers
	// matching on it keep working if a backend ever surfaces it.
	ErrDuplicate = errors.New("credential already exists")

	// ErrInvalidKey is returned when the key is empty.
	ErrInvalidKey = errors.New("credential key must not be empty")
)

// StoreError wraps an unclassified failure from the underlying backend.
// On macOS the wrapped error carries the raw Security framework status.
type StoreError struct {
	Op  string // "save", "load" or "delete"
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("credstore %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// DecodeError is returned by LoadString when the stored bytes are not
// valid UTF-8. Load still returns the raw bytes for such keys.
type DecodeError struct {
	Key string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("credential %q is not valid UTF-8 text", e.Key)
}

// SaveString stores a text credential as its UTF-8 bytes.
func SaveString(s Store, key, value string) error {
	// Go strings can hold arbitrary bytes; reject ones that are not
	// actually UTF-8 so LoadString can always round-trip them.
	if !utf8.ValidString(value) {
		return &StoreError{Op: "save", Key: key, Err: errors.New("value is not valid UTF-8")}
	}
	return s.Save(key, []byte(value))
}

// LoadString loads a credential and decodes it as UTF-8 text.
func LoadString(s Store, key string) (string, error) {
	data, err := s.Load(key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &DecodeError{Key: key}
	}
	return string(data), nil
}
