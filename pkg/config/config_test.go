package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvColor, "")
	t.Setenv(EnvEngine, "")
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "re2", cfg.Engine)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 5*time.Second, cfg.MatchTimeout)
	assert.Equal(t, "bold,red", cfg.Colors.Match)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "lgrep", "config.yaml"), `
ignore_case: true
line_number: true
engine: backtrack
format: json
hidden: true
extract: pdf,docx
match_timeout: 2s
colors:
  match: underline,yellow
log:
  file: /tmp/lgrep.log
  compress: true
`)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.True(t, cfg.IgnoreCase)
	assert.True(t, cfg.LineNumber)
	assert.Equal(t, "backtrack", cfg.Engine)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Hidden)
	assert.Equal(t, "pdf,docx", cfg.Extract)
	assert.Equal(t, 2*time.Second, cfg.MatchTimeout)
	assert.Equal(t, "underline,yellow", cfg.Colors.Match)
	assert.Equal(t, "magenta", cfg.Colors.Origin, "unset keys keep defaults")
	assert.Equal(t, "/tmp/lgrep.log", cfg.Log.File)
	assert.True(t, cfg.Log.Compress)
	assert.Equal(t, 10, cfg.Log.MaxSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "color: always\nengine: re2\n")
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvEngine, "backtrack")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Color)
	assert.Equal(t, "backtrack", cfg.Engine)

	t.Setenv(EnvColor, "never")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Color)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "color: [", "failed to load config file"},
		{"bad color", "color: rainbow", "color must be auto, always or never"},
		{"bad engine", "engine: pcre2", "unknown regex engine"},
		{"bad format", "format: xml", "format must be text, json or sarif"},
		{"bad extract", "extract: rar", "unknown extract type"},
		{"bad style", "colors:\n  line: sparkly", "colors.line"},
		{"negative size", "max_file_size: -1", "max_file_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "config.yaml")
			writeConfig(t, path, tt.content)

			_, err := Load(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "lgrep", "config.yaml"), Path())

	t.Setenv(EnvConfig, "/etc/lgrep.yaml")
	assert.Equal(t, "/etc/lgrep.yaml", Path())
}
