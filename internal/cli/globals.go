package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Service string `help:"Service namespace for stored credentials" default:"" env:"CREDS_SERVICE"`
	Backend string `help:"Storage backend" default:"" enum:"auto,keychain,keyring,file," env:"CREDS_BACKEND"`
	Output  string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"CREDS_OUTPUT"`
	Verbose bool   `help:"Verbose output" short:"v" env:"CREDS_VERBOSE"`
}

// ResolvedOutput returns the effective output mode
// "auto" detects TTY: if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput() string {
	if g.Output != "auto" {
		return g.Output
	}

	// Detect if stdout is a TTY
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}
