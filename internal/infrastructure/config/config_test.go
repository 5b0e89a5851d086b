package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Empty(t, cfg.Interpreter.SearchPath)
	assert.Zero(t, cfg.Interpreter.CallTimeout)
	assert.False(t, cfg.Interpreter.DedupSearchPath)
	assert.Empty(t, cfg.Manifest)
	assert.False(t, cfg.Metrics)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("LAUNCHER_SEARCH_PATH", "/opt/scripts,/usr/share/launcher")
	t.Setenv("LAUNCHER_CALL_TIMEOUT", "2s")
	t.Setenv("LAUNCHER_DEDUP_SEARCH_PATH", "true")
	t.Setenv("LAUNCHER_MANIFEST", "launcher.yaml")
	t.Setenv("LAUNCHER_METRICS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, []string{"/opt/scripts", "/usr/share/launcher"}, cfg.Interpreter.SearchPath)
	assert.Equal(t, 2*time.Second, cfg.Interpreter.CallTimeout)
	assert.True(t, cfg.Interpreter.DedupSearchPath)
	assert.Equal(t, "launcher.yaml", cfg.Manifest)
	assert.True(t, cfg.Metrics)
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{name: "default values", wantLevel: "info"},
		{name: "debug level", level: "debug", wantLevel: "debug"},
		{name: "development mode", dev: "true", wantLevel: "info", wantDev: true},
		{name: "error level production", level: "error", dev: "false", wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("LOG_LEVEL")
			os.Unsetenv("LOG_DEV")
			if tt.level != "" {
				t.Setenv("LOG_LEVEL", tt.level)
			}
			if tt.dev != "" {
				t.Setenv("LOG_DEV", tt.dev)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}

func TestLoadOrDefaultOnInvalidValue(t *testing.T) {
	t.Setenv("LAUNCHER_CALL_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, Default(), cfg)
}

func TestInterpreterConfig(t *testing.T) {
	cfg := Default()
	cfg.Interpreter.SearchPath = []string{"/env"}
	cfg.Interpreter.CallTimeout = time.Second
	cfg.Interpreter.DedupSearchPath = true

	ic := cfg.InterpreterConfig(&Manifest{SearchPath: []string{"/manifest"}})
	assert.Equal(t, []string{"/env", "/manifest"}, ic.SearchPath)
	assert.Equal(t, time.Second, ic.CallTimeout)
	assert.True(t, ic.DedupSearchPath)
	assert.True(t, ic.EnableConsole)

	assert.Equal(t, []string{"/env"}, cfg.InterpreterConfig(nil).SearchPath)
}

func TestParseManifestFormats(t *testing.T) {
	want := &Manifest{
		SearchPath: []string{"./scripts"},
		Categories: []CategorySpec{
			{Module: "games"},
			{Module: "tools", Alias: "dev"},
		},
	}

	tests := []struct {
		ext  string
		data string
	}{
		{ext: ".yaml", data: `
search_path: [./scripts]
categories:
  - module: games
  - module: tools
    alias: dev
`},
		{ext: ".yml", data: `
search_path:
  - ./scripts
categories:
  - module: games
  - {module: tools, alias: dev}
`},
		{ext: ".toml", data: `
search_path = ["./scripts"]

[[categories]]
module = "games"

[[categories]]
module = "tools"
alias = "dev"
`},
		{ext: ".json", data: `{
  "search_path": ["./scripts"],
  "categories": [{"module": "games"}, {"module": "tools", "alias": "dev"}]
}`},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			m, err := ParseManifest(tt.ext, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, want, m)
		})
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		data    string
		wantErr string
	}{
		{name: "unsupported", ext: ".ini", data: "", wantErr: "unsupported manifest format"},
		{name: "bad json", ext: ".json", data: "{", wantErr: "invalid JSON"},
		{name: "bad toml", ext: ".toml", data: "categories = [", wantErr: "invalid TOML"},
		{name: "missing module", ext: ".json", data: `{"categories": [{"alias": "x"}]}`, wantErr: "module is required"},
		{name: "duplicate key", ext: ".json", data: `{"categories": [{"module": "games"}, {"module": "other", "alias": "games"}]}`, wantErr: `duplicate key "games"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(tt.ext, []byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadManifestResolvesSearchPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "launcher.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
search_path: [scripts, /abs/scripts]
categories:
  - module: games
`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "scripts"), "/abs/scripts"}, m.SearchPath)
	assert.Equal(t, "games", m.Categories[0].Key())

	_, err = LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
