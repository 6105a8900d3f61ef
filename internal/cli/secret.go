package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/semmy-space/creds/internal/config"
	"github.com/semmy-space/creds/internal/credstore"
	"github.com/semmy-space/creds/internal/output"
	"golang.org/x/term"
)

// openStore creates the credential store described by the resolved config.
func openStore(cfg *config.Config) (credstore.Store, error) {
	store, err := credstore.NewStore(credstore.Options{
		Service:      cfg.Service,
		Backend:      cfg.Backend,
		FilePassword: os.Getenv("CREDS_STORE_PASSWORD"),
	})
	if err != nil {
		return nil, &output.CLIError{
			Message:  fmt.Sprintf("Failed to open credential store: %v", err),
			ExitCode: output.ExitBackend,
		}
	}
	return store, nil
}

// SetCmd implements the set command
type SetCmd struct {
	Key   string `arg:"" help:"Credential key"`
	Value string `arg:"" optional:"" help:"Credential value (omit to read from stdin or prompt)"`
}

// Run executes the set command
func (cmd *SetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if cmd.Value != "" {
		if err := credstore.SaveString(store, cmd.Key, cmd.Value); err != nil {
			return saveError(cmd.Key, err)
		}
	} else {
		value, err := readValue(os.Stdin)
		if err != nil {
			return &output.CLIError{
				Message:  fmt.Sprintf("Failed to read value: %v", err),
				ExitCode: output.ExitGeneral,
			}
		}
		if err := store.Save(cmd.Key, value); err != nil {
			return saveError(cmd.Key, err)
		}
	}

	fmt.Fprintf(os.Stderr, "Stored %s\n", cmd.Key)
	return nil
}

// readValue reads the credential value from stdin. On a terminal it
// prompts with echo disabled; otherwise it consumes stdin verbatim so
// binary payloads survive piping.
func readValue(stdin *os.File) ([]byte, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Value: ")
		value, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return value, nil
	}
	return io.ReadAll(stdin)
}

func saveError(key string, err error) error {
	if errors.Is(err, credstore.ErrInvalidKey) {
		return &output.CLIError{
			Message:  "Credential key must not be empty",
			ExitCode: output.ExitUsage,
		}
	}
	if errors.Is(err, credstore.ErrDuplicate) {
		return &output.CLIError{
			Message:  fmt.Sprintf("A credential already exists under %q", key),
			ExitCode: output.ExitConflict,
		}
	}
	return &output.CLIError{
		Message:  fmt.Sprintf("Failed to store credential: %v", err),
		ExitCode: output.ExitBackend,
	}
}

// GetCmd implements the get command
type GetCmd struct {
	Key string `arg:"" help:"Credential key"`
	Raw bool   `help:"Write the raw bytes to stdout" short:"r"`
}

// Run executes the get command
func (cmd *GetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	if cmd.Raw {
		data, err := store.Load(cmd.Key)
		if err != nil {
			return loadError(cmd.Key, err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	value, err := credstore.LoadString(store, cmd.Key)
	if err != nil {
		return loadError(cmd.Key, err)
	}

	fmt.Println(value)
	return nil
}

func loadError(key string, err error) error {
	if errors.Is(err, credstore.ErrNotFound) {
		return (&output.CLIError{
			Message:  fmt.Sprintf("No credential stored under %q", key),
			ExitCode: output.ExitNotFound,
		}).WithHint(fmt.Sprintf("Run: creds set %s", key))
	}

	var decodeErr *credstore.DecodeError
	if errors.As(err, &decodeErr) {
		return (&output.CLIError{
			Message:  fmt.Sprintf("Credential %q is not valid UTF-8 text", key),
			ExitCode: output.ExitDecode,
		}).WithHint(fmt.Sprintf("Run: creds get --raw %s", key))
	}

	if errors.Is(err, credstore.ErrInvalidKey) {
		return &output.CLIError{
			Message:  "Credential key must not be empty",
			ExitCode: output.ExitUsage,
		}
	}

	return &output.CLIError{
		Message:  fmt.Sprintf("Failed to load credential: %v", err),
		ExitCode: output.ExitBackend,
	}
}

// RmCmd implements the rm command
type RmCmd struct {
	Key string `arg:"" help:"Credential key"`
}

// Run executes the rm command
func (cmd *RmCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	// Deleting a key that was never stored succeeds, same as the store
	if err := store.Delete(cmd.Key); err != nil {
		if errors.Is(err, credstore.ErrInvalidKey) {
			return &output.CLIError{
				Message:  "Credential key must not be empty",
				ExitCode: output.ExitUsage,
			}
		}
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to delete credential: %v", err),
			ExitCode: output.ExitBackend,
		}
	}

	fmt.Fprintf(os.Stderr, "Removed %s\n", cmd.Key)
	return nil
}
