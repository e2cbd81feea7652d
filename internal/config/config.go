// Package config loads generator settings from .javadoc.toml or .javadoc.yaml
// files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
)

const (
	// DefaultDateFormat is used when no date_format is configured.
	DefaultDateFormat = "yyyy-MM-dd HH:mm"
	// DefaultAuthor is used when neither the config nor the environment names one.
	DefaultAuthor = "author"
)

// FileNames lists the config file names Find looks for, in order.
var FileNames = []string{".javadoc.toml", ".javadoc.yaml", ".javadoc.yml"}

// Config holds the settings shared by every command.
type Config struct {
	Author           string   `toml:"author" yaml:"author"`
	DateFormat       string   `toml:"date_format" yaml:"date_format"`
	MethodTemplate   []string `toml:"method_template" yaml:"method_template"`
	FileTemplate     []string `toml:"file_template" yaml:"file_template"`
	HeaderLines      int      `toml:"header_lines" yaml:"header_lines"`
	PackageScanLines int      `toml:"package_scan_lines" yaml:"package_scan_lines"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates the config file at path. The format is chosen by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the first config file in dir, or "" when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadDir loads the config file found in dir, falling back to Default.
func LoadDir(dir string) (*Config, string, error) {
	path := Find(dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Author) == "" {
		cfg.Author = envAuthor()
	}
	if strings.TrimSpace(cfg.DateFormat) == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	if len(cfg.MethodTemplate) == 0 {
		cfg.MethodTemplate = generator.DefaultMethodTemplate()
	}
	if len(cfg.FileTemplate) == 0 {
		cfg.FileTemplate = generator.DefaultFileTemplate()
	}
	if cfg.HeaderLines == 0 {
		cfg.HeaderLines = locator.DefaultHeaderLines
	}
	if cfg.PackageScanLines == 0 {
		cfg.PackageScanLines = locator.DefaultPackageScanLines
	}
}

func envAuthor() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return DefaultAuthor
}

func validate(cfg *Config) error {
	if cfg.HeaderLines < 0 {
		return fmt.Errorf("header_lines must not be negative, got %d", cfg.HeaderLines)
	}
	if cfg.PackageScanLines < 0 {
		return fmt.Errorf("package_scan_lines must not be negative, got %d", cfg.PackageScanLines)
	}
	if err := generator.ValidateTemplate(cfg.MethodTemplate); err != nil {
		return fmt.Errorf("method_template: %w", err)
	}
	if err := generator.ValidateTemplate(cfg.FileTemplate); err != nil {
		return fmt.Errorf("file_template: %w", err)
	}
	return nil
}

// AuthorName returns the value of ${author}.
func (c *Config) AuthorName() string { return c.Author }

// DateLayout returns the format used for ${date}.
func (c *Config) DateLayout() string { return c.DateFormat }

// MethodLines returns the method comment template.
func (c *Config) MethodLines() []string { return c.MethodTemplate }

// FileLines returns the file header template.
func (c *Config) FileLines() []string { return c.FileTemplate }

// HeaderLineLimit bounds how many lines of a declaration are read.
func (c *Config) HeaderLineLimit() int { return c.HeaderLines }

// PackageScanLimit bounds the search for the package statement.
func (c *Config) PackageScanLimit() int { return c.PackageScanLines }
