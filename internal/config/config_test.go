package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seitarof/gen-javadoc/internal/generator"
	"github.com/seitarof/gen-javadoc/internal/locator"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".javadoc.toml", `
author = "alice"
date_format = "yyyy/MM/dd"
method_template = ["/**", " * ${params}", " */"]
header_lines = 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.Author)
	assert.Equal(t, "yyyy/MM/dd", cfg.DateFormat)
	assert.Equal(t, []string{"/**", " * ${params}", " */"}, cfg.MethodTemplate)
	assert.Equal(t, generator.DefaultFileTemplate(), cfg.FileTemplate)
	assert.Equal(t, 4, cfg.HeaderLines)
	assert.Equal(t, locator.DefaultPackageScanLines, cfg.PackageScanLines)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".javadoc.yaml", `
author: bob
file_template:
  - "// ${fileName}"
package_scan_lines: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.Author)
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)
	assert.Equal(t, []string{"// ${fileName}"}, cfg.FileTemplate)
	assert.Equal(t, 5, cfg.PackageScanLines)
	assert.Equal(t, locator.DefaultHeaderLines, cfg.HeaderLines)
}

func TestLoad_EmptyYAML(t *testing.T) {
	t.Setenv("USER", "carol")
	path := writeFile(t, t.TempDir(), ".javadoc.yml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "carol", cfg.Author)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unknown yaml field", file: "a.yaml", content: "auther: x\n", wantErr: "field auther not found"},
		{name: "bad toml", file: "b.toml", content: "author = \n", wantErr: "decode"},
		{name: "negative header lines", file: "c.toml", content: "header_lines = -1\n", wantErr: "header_lines must not be negative"},
		{name: "negative package scan", file: "d.toml", content: "package_scan_lines = -2\n", wantErr: "package_scan_lines must not be negative"},
		{name: "unsupported", file: "e.json", content: "{}", wantErr: "unsupported config format"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tc.file, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_LiteralDollarBraces(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".javadoc.toml",
		"method_template = [\"/**\", \" * see ${user.home}\", \" * ${project-name}\", \" * cost: ${\", \" */\"]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, " * cost: ${", cfg.MethodTemplate[3])
}

func TestDefault_AuthorFromEnvironment(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "dave")
	assert.Equal(t, "dave", Default().Author)

	t.Setenv("USERNAME", "")
	assert.Equal(t, DefaultAuthor, Default().Author)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	yml := writeFile(t, dir, ".javadoc.yml", "author: x\n")
	assert.Equal(t, yml, Find(dir))

	tomlPath := writeFile(t, dir, ".javadoc.toml", "author = \"x\"\n")
	assert.Equal(t, tomlPath, Find(dir))
}

func TestLoadDir_FallsBackToDefault(t *testing.T) {
	cfg, path, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".javadoc.toml", "author = \"before\"\n")

	got := make(chan string, 16)
	w := NewWatcher(path, func(cfg *Config) {
		select {
		case got <- cfg.Author:
		default:
		}
	})
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("author = \"after\"\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case author := <-got:
			if author == "after" {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
}
