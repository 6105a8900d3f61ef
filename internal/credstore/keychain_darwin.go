//go:build darwin

package credstore

import (
	"errors"
	"fmt"

	gokeychain "github.com/keybase/go-keychain"
)

// KeychainStore stores credentials in the macOS Keychain as generic
// password items, one item per key under a single service attribute.
type KeychainStore struct {
	service string
}

// NewKeychainStore creates a Keychain-backed credential store. An empty
// service uses ServiceName.
func NewKeychainStore(service string) *KeychainStore {
	if service == "" {
		service = ServiceName
	}
	return &KeychainStore{service: service}
}

// Save upserts by deleting any existing item first; the Keychain has no
// atomic replace for generic passwords, so a concurrent reader can see
// a transient absence between the delete and the add.
func (s *KeychainStore) Save(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	_ = s.Delete(key)

	item := gokeychain.NewItem()
	item.SetSecClass(gokeychain.SecClassGenericPassword)
	item.SetService(s.service)
	item.SetAccount(key)
	item.SetData(value)
	// Readable after the first unlock since boot, never synced or
	// migrated to another device.
	item.SetSynchronizable(gokeychain.SynchronizableNo)
	item.SetAccessible(gokeychain.AccessibleAfterFirstUnlockThisDeviceOnly)

	if err := gokeychain.AddItem(item); err != nil {
		if errors.Is(err, gokeychain.ErrorDuplicateItem) {
			// Unreachable while Save deletes first; surfaced for callers
			// anyway rather than masked as an unknown failure.
			return fmt.Errorf("%w: %s", ErrDuplicate, key)
		}
		return &StoreError{Op: "save", Key: key, Err: err}
	}
	return nil
}

// Load queries for a single matching item and returns its payload.
func (s *KeychainStore) Load(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	query := gokeychain.NewItem()
	query.SetSecClass(gokeychain.SecClassGenericPassword)
	query.SetService(s.service)
	query.SetAccount(key)
	query.SetMatchLimit(gokeychain.MatchLimitOne)
	query.SetReturnData(true)

	results, err := gokeychain.QueryItem(query)
	if err != nil {
		if errors.Is(err, gokeychain.ErrorItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, &StoreError{Op: "load", Key: key, Err: err}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return results[0].Data, nil
}

// Delete removes the item for key. Missing items are not an error.
func (s *KeychainStore) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	item := gokeychain.NewItem()
	item.SetSecClass(gokeychain.SecClassGenericPassword)
	item.SetService(s.service)
	item.SetAccount(key)

	if err := gokeychain.DeleteItem(item); err != nil && !errors.Is(err, gokeychain.ErrorItemNotFound) {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
