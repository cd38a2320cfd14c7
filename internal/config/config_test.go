package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
packages:
  - ./models/...
  - ./api
output: zz_described.go
fail_on_warnings: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"./models/...", "./api"}, cfg.Packages)
	assert.Equal(t, "zz_described.go", cfg.Output)
	assert.True(t, cfg.FailOnWarnings)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "described_gen.go", cfg.Output)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DESCRIBE_GEN_OUTPUT", "meta_gen.go")
	t.Setenv("DESCRIBE_GEN_DEBUG_UNFORMATTED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "meta_gen.go", cfg.Output)
	assert.True(t, cfg.DebugUnformatted)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"nested output", "output: gen/described.go\n", "output must be a file name"},
		{"not go", "output: described.txt\n", "output must be a non-test .go file"},
		{"test file", "output: described_test.go\n", "output must be a non-test .go file"},
		{"no packages", "packages: []\n", "packages must list at least one pattern"},
		{"malformed", "packages: [\n", "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)

	err = WriteDefault(path, false)
	require.ErrorIs(t, err, ErrConfigExists)

	require.NoError(t, WriteDefault(path, true))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	assert.Equal(t, `packages:
    - ./...
output: described_gen.go
verbose: false
debug_unformatted: false
fail_on_warnings: false
`, string(data))
}
