package cli

import (
	"runtime"

	"github.com/semmy-space/creds/internal/config"
	"github.com/semmy-space/creds/internal/credstore"
)

// BackendCmd implements the backend command
type BackendCmd struct{}

// backendInfo is the resolved storage environment shown to the user.
type backendInfo struct {
	Backend    string
	Service    string
	ConfigFile string
	DataDir    string
}

// Run executes the backend command
func (cmd *BackendCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	service := cfg.Service
	if service == "" {
		service = credstore.ServiceName
	}

	info := backendInfo{
		Backend:    resolveBackendName(cfg.Backend),
		Service:    service,
		ConfigFile: config.ConfigPath(),
		DataDir:    config.DataDir(),
	}

	return fp.Formatter.Print(info)
}

// resolveBackendName reports which backend "auto" would pick on this
// host, mirroring the selection in credstore.NewStore (minus the
// open-failure fallback, which can't be known without opening).
func resolveBackendName(backend string) string {
	if backend != "" && backend != "auto" {
		return backend
	}
	if credstore.IsWSL() || credstore.IsHeadless() {
		return "file"
	}
	if runtime.GOOS == "darwin" {
		return "keychain"
	}
	return "keyring"
}
