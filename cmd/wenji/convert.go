package main

import (
	"fmt"

	"github.com/fwojciec/wenji"
)

// ConvertCmd converts a source directory into an EPUB file.
type ConvertCmd struct {
	SourceDir string
}

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	w, err := deps.Output.Create()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error creating output: %v\n", err)
		return err
	}

	result, err := deps.Assembler.Run(deps.Ctx, c.SourceDir, w, nil)
	if err != nil {
		_ = deps.Output.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	size, err := deps.Output.Commit()
	if err != nil {
		_ = deps.Output.Abort()
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d of %d articles\n", result.Skipped, result.Articles)
	}
	fmt.Fprintf(deps.Stdout, "EPUB book created: %s\n", deps.Output.Path())
	fmt.Fprintf(deps.Stdout, "Total size: %s\n", FormatMegabytes(size))
	return nil
}

// errorText prefers the message of application errors over their code.
func errorText(err error) string {
	if wenji.ErrorCode(err) == wenji.EINTERNAL {
		return err.Error()
	}
	return wenji.ErrorMessage(err)
}
