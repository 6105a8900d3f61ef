package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cenkalti/backoff/v4"
)

// Options select and configure the storage backend.
type Options struct {
	Service      string // entry namespace, ServiceName when empty
	Backend      string // "auto" (default), "keychain", "keyring" or "file"
	FilePath     string // file backend location, default under xdg.DataHome
	FilePassword string // file backend encryption password
}

// NewStore creates a Store using the requested or platform-appropriate
// backend. With "auto" it prefers the native secure store, falling back
// to the encrypted file in WSL and headless environments where no
// keyring is reachable.
func NewStore(opts Options) (Store, error) {
	switch opts.Backend {
	case "", "auto":
		// fall through to detection below
	case "keychain":
		return newKeychainBackend(opts.Service)
	case "keyring":
		return openKeyring(opts.Service)
	case "file":
		store, err := NewFileStore(opts.FilePath, opts.FilePassword)
		if err != nil {
			return nil, err
		}
		markWarningsDone()
		return store, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}

	// WSL and headless environments can't use the keyring reliably
	if IsWSL() || IsHeadless() {
		warnOnce("Detected WSL/headless environment, using encrypted file storage")
		store, err := NewFileStore(opts.FilePath, opts.FilePassword)
		if err != nil {
			return nil, err
		}
		markWarningsDone()
		return store, nil
	}

	store, err := newSystemStore(opts.Service)
	if err != nil {
		warnOnce(fmt.Sprintf("Secure store unavailable (%v), falling back to encrypted file", err))
		fstore, ferr := NewFileStore(opts.FilePath, opts.FilePassword)
		if ferr != nil {
			return nil, ferr
		}
		markWarningsDone()
		return fstore, nil
	}

	return store, nil
}

// openKeyring opens the OS keyring, retrying briefly: the Secret
// Service sometimes refuses connections while the session bus is still
// coming up.
func openKeyring(service string) (Store, error) {
	var store *KeyringStore
	open := func() error {
		s, err := NewKeyringStore(service)
		if err != nil {
			return err
		}
		store = s
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 2 * time.Second

	if err := backoff.Retry(open, policy); err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return store, nil
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true if running in a headless environment (no display server).
// Only applicable on Linux; macOS and Windows are assumed to have GUI.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	// Check for X11 or Wayland display
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// warningShown checks if the file-store warning has already been shown.
// Uses a marker file in the data directory to avoid repeating on every command.
func warningShown() bool {
	return fileExists(warningMarkerPath())
}

// markWarningShown creates the marker file so the warning isn't repeated.
func markWarningShown() {
	_ = os.WriteFile(warningMarkerPath(), []byte("1"), 0600)
}

func warningMarkerPath() string {
	return filepath.Join(xdg.DataHome, "creds", ".file-store-warning-shown")
}

// quietMode returns true if the user has suppressed warnings via CREDS_QUIET.
func quietMode() bool {
	return os.Getenv("CREDS_QUIET") == "1" || os.Getenv("CREDS_QUIET") == "true"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// warnOnce prints a message to stderr, but only the first time.
// Subsequent invocations are suppressed via a marker file.
// Set CREDS_QUIET=1 to suppress entirely.
func warnOnce(msg string) {
	if quietMode() || warningShown() {
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// markWarningsDone persists the marker so future commands stay quiet.
func markWarningsDone() {
	if !warningShown() {
		markWarningShown()
	}
}
