package credstore

import (
	"errors"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"
)

// KeyringStore implements Store on top of the OS keyring (Secret
// Service on Linux, Credential Manager on Windows, Keychain on macOS).
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS keyring for the given service namespace.
// Returns an error if no keyring backend is available on this platform.
func NewKeyringStore(service string) (*KeyringStore, error) {
	if service == "" {
		service = ServiceName
	}
	cfg := keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(xdg.DataHome, "creds", "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}

	return &KeyringStore{ring: ring}, nil
}

// Save stores value under key. keyring.Set replaces existing items in
// place, so unlike the native Keychain backend there is no window where
// the entry is absent.
func (s *KeyringStore) Save(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	item := keyring.Item{
		Key:  key,
		Data: value,
	}
	if err := s.ring.Set(item); err != nil {
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load retrieves the bytes stored under key.
func (s *KeyringStore) Load(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}
	return item.Data, nil
}

// Delete removes the entry for key, succeeding if it was never there.
func (s *KeyringStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil
		}
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
