package cli

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"github.com/semmy-space/creds/internal/credstore"
	"github.com/semmy-space/creds/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadValueFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	payload := []byte{0x00, 0xFF, 'a', '\n', 'b'}
	go func() {
		w.Write(payload)
		w.Close()
	}()

	got, err := readValue(r)
	require.NoError(t, err)
	// Piped input is stored verbatim, trailing newline included
	assert.Equal(t, payload, got)
}

func TestLoadErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		exitCode int
		wantHint bool
	}{
		{
			name:     "not found",
			err:      fmt.Errorf("%w: token", credstore.ErrNotFound),
			exitCode: output.ExitNotFound,
			wantHint: true,
		},
		{
			name:     "decode failure",
			err:      &credstore.DecodeError{Key: "token"},
			exitCode: output.ExitDecode,
			wantHint: true,
		},
		{
			name:     "empty key",
			err:      credstore.ErrInvalidKey,
			exitCode: output.ExitUsage,
			wantHint: false,
		},
		{
			name:     "backend failure",
			err:      &credstore.StoreError{Op: "load", Key: "token", Err: assert.AnError},
			exitCode: output.ExitBackend,
			wantHint: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loadError("token", tt.err)

			cliErr, ok := err.(*output.CLIError)
			require.True(t, ok, "expected *output.CLIError, got %T", err)
			assert.Equal(t, tt.exitCode, cliErr.ExitCode)
			if tt.wantHint {
				assert.NotEmpty(t, cliErr.Hint)
			}
		})
	}
}

func TestSaveErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		exitCode int
	}{
		{
			name:     "empty key",
			err:      credstore.ErrInvalidKey,
			exitCode: output.ExitUsage,
		},
		{
			name:     "duplicate entry",
			err:      fmt.Errorf("%w: token", credstore.ErrDuplicate),
			exitCode: output.ExitConflict,
		},
		{
			name:     "backend failure",
			err:      &credstore.StoreError{Op: "save", Key: "token", Err: assert.AnError},
			exitCode: output.ExitBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := saveError("token", tt.err)

			cliErr, ok := err.(*output.CLIError)
			require.True(t, ok, "expected *output.CLIError, got %T", err)
			assert.Equal(t, tt.exitCode, cliErr.ExitCode)
		})
	}
}

func TestResolveBackendNameExplicit(t *testing.T) {
	assert.Equal(t, "file", resolveBackendName("file"))
	assert.Equal(t, "keyring", resolveBackendName("keyring"))
	assert.Equal(t, "keychain", resolveBackendName("keychain"))
}

func TestResolveBackendNameAuto(t *testing.T) {
	got := resolveBackendName("auto")

	switch {
	case credstore.IsWSL() || credstore.IsHeadless():
		assert.Equal(t, "file", got)
	case runtime.GOOS == "darwin":
		assert.Equal(t, "keychain", got)
	default:
		assert.Equal(t, "keyring", got)
	}
}
