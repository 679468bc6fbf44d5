// Package config loads the YAML configuration of the converter.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fwojciec/wenji"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultYAML is the documented default configuration file.
//
//go:embed default.yaml
var DefaultYAML []byte

// Fallback extractor names.
const (
	FallbackNone        = "none"
	FallbackReadability = "readability"
	FallbackTrafilatura = "trafilatura"
)

// Config is the converter configuration.
type Config struct {
	SourceDir         string `yaml:"source_dir"`
	OutputFile        string `yaml:"output_file"`
	Book              Book   `yaml:"book"`
	FallbackExtractor string `yaml:"fallback_extractor"`
	LogLevel          string `yaml:"log_level"`
}

// Book holds the book metadata.
type Book struct {
	Identifier string `yaml:"identifier"`
	Title      string `yaml:"title"`
	Language   string `yaml:"language"`
	Author     string `yaml:"author"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SourceDir:  ".",
		OutputFile: "布达文萨文集.epub",
		Book: Book{
			Identifier: "id123456789",
			Title:      "布达文萨文集",
			Language:   "zh-CN",
			Author:     "Buddhavamsa",
		},
		FallbackExtractor: FallbackNone,
		LogLevel:          "info",
	}
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, wenji.Errorf(wenji.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, wenji.Errorf(wenji.EINVALID, "parsing config: %v", err)
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return wenji.Errorf(wenji.EINVALID, "source_dir required")
	}
	if c.OutputFile == "" {
		return wenji.Errorf(wenji.EINVALID, "output_file required")
	}
	switch c.FallbackExtractor {
	case "", FallbackNone, FallbackReadability, FallbackTrafilatura:
	default:
		return wenji.Errorf(wenji.EINVALID, "unknown fallback_extractor %q", c.FallbackExtractor)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	meta := c.Metadata()
	return meta.Validate()
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, wenji.Errorf(wenji.EINVALID, "unknown log_level %q", c.LogLevel)
	}
	return level, nil
}

// Metadata returns the book metadata. An empty identifier is replaced by a
// name-based UUID URN derived from the title, so it is stable across runs.
func (c *Config) Metadata() wenji.Metadata {
	id := c.Book.Identifier
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(c.Book.Title)).URN()
	}
	return wenji.Metadata{
		Identifier: id,
		Title:      c.Book.Title,
		Language:   c.Book.Language,
		Author:     c.Book.Author,
	}
}
