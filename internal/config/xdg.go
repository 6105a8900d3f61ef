package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for creds
// Typically ~/.config/creds/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "creds")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir returns the XDG-compliant data directory for creds
// Typically ~/.local/share/creds/ on Linux (encrypted file store, keyring files)
func DataDir() string {
	return filepath.Join(xdg.DataHome, "creds")
}

// CredentialFilePath returns the default location of the encrypted
// file-backend credential store.
func CredentialFilePath() string {
	return filepath.Join(DataDir(), "credentials.enc")
}
