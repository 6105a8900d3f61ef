//go:build !darwin

package credstore

import "errors"

// newSystemStore returns the OS keyring store outside macOS.
func newSystemStore(service string) (Store, error) {
	return openKeyring(service)
}

func newKeychainBackend(service string) (Store, error) {
	return nil, errors.New("keychain backend is only available on macOS")
}
