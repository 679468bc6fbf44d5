package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wenji"
	"github.com/fwojciec/wenji/assemble"
	"github.com/fwojciec/wenji/config"
	"github.com/fwojciec/wenji/epub"
	"github.com/fwojciec/wenji/fs"
	"github.com/fwojciec/wenji/goquery"
	"github.com/fwojciec/wenji/readability"
	wslog "github.com/fwojciec/wenji/slog"
	"github.com/fwojciec/wenji/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Now is the clock used for the cover date and the package timestamp.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wenji"),
		kong.Description("Convert a directory of scraped articles into one EPUB book"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.PrintConfig {
		_, err := stdout.Write(config.DefaultYAML)
		return err
	}

	cfg, err := cli.Resolve()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", wenji.ErrorMessage(err))
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Output: fs.NewOutputFile(cfg.OutputFile),
		Assembler: &assemble.Assembler{
			Source:    wslog.NewLoggingArticleSource(fs.NewArticleSource(), logger),
			Extractor: wslog.NewLoggingExtractor(newExtractor(cfg), logger),
			Writer:    wslog.NewLoggingBookWriter(epub.NewWriter(epub.WithClock(m.Now)), logger),
			Metadata:  cfg.Metadata(),
			Logger:    logger,
			Now:       m.Now,
		},
	}

	cmd := &ConvertCmd{SourceDir: cfg.SourceDir}
	return cmd.Run(deps)
}

// newExtractor returns the content extractor for cfg, wiring the optional
// fallback extractor.
func newExtractor(cfg *config.Config) wenji.Extractor {
	var opts []goquery.Option
	switch cfg.FallbackExtractor {
	case config.FallbackReadability:
		opts = append(opts, goquery.WithFallback(readability.NewExtractor()))
	case config.FallbackTrafilatura:
		opts = append(opts, goquery.WithFallback(trafilatura.NewExtractor()))
	}
	return goquery.NewExtractor(opts...)
}
