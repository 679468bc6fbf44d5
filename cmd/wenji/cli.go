package main

import (
	"context"
	"io"

	"github.com/fwojciec/wenji/assemble"
	"github.com/fwojciec/wenji/config"
	"github.com/fwojciec/wenji/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Output    *fs.OutputFile
	Assembler *assemble.Assembler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	SourceDir   string `arg:"" optional:"" help:"Directory holding one subdirectory per article"`
	OutputFile  string `short:"o" help:"Path of the generated EPUB file"`
	Config      string `short:"c" type:"path" help:"YAML configuration file"`
	Fallback    string `help:"Extractor for pages without a content container (none, readability, trafilatura)"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	PrintConfig bool   `name:"print-config" help:"Print the default configuration file and exit"`
}

// Resolve loads the configuration file, if any, and applies flag overrides.
func (c *CLI) Resolve() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return nil, err
		}
	}

	if c.SourceDir != "" {
		cfg.SourceDir = c.SourceDir
	}
	if c.OutputFile != "" {
		cfg.OutputFile = c.OutputFile
	}
	if c.Fallback != "" {
		cfg.FallbackExtractor = c.Fallback
	}
	if c.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
