package cli

import (
	"github.com/alecthomas/kong"
	"github.com/semmy-space/creds/internal/config"
	"github.com/semmy-space/creds/internal/output"
	"github.com/willabides/kongplete"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Set     SetCmd     `cmd:"" help:"Store a credential"`
	Get     GetCmd     `cmd:"" help:"Retrieve a credential"`
	Rm      RmCmd      `cmd:"" help:"Delete a credential"`
	Config  ConfigCmd  `cmd:"" help:"Configuration commands"`
	Backend BackendCmd `cmd:"" help:"Show storage backend information"`
	Version VersionCmd `cmd:"" help:"Show version information"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// BeforeApply hook runs before any command execution
// It loads config, resolves backend and service, creates formatter, and binds dependencies
func (c *CLI) BeforeApply(ctx *kong.Context) error {
	// Load config from XDG path (returns defaults if missing)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Resolve service: CLI flag > config > default namespace
	service := c.Service
	if service == "" && cfg.Service != "" {
		service = cfg.Service
	}
	cfg.Service = service

	// Resolve backend: CLI flag > config > "auto"
	backend := c.Globals.Backend
	if backend == "" && cfg.Backend != "" {
		backend = cfg.Backend
	}
	if backend == "" {
		backend = "auto"
	}
	cfg.Backend = backend

	// Resolve output mode: flag > config default > TTY detection
	mode := c.Output
	if mode == "auto" && cfg.DefaultOutput != "" {
		mode = cfg.DefaultOutput
	}
	c.Output = mode

	// Create output formatter
	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput()),
	}

	// Bind dependencies to kong context
	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	println("creds version " + version)
	return nil
}
