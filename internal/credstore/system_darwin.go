//go:build darwin

package credstore

// newSystemStore returns the native Keychain store on macOS.
func newSystemStore(service string) (Store, error) {
	return NewKeychainStore(service), nil
}

func newKeychainBackend(service string) (Store, error) {
	return NewKeychainStore(service), nil
}
