package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/ciproject/internal/config"
	"github.com/specialistvlad/ciproject/internal/hcl"
	"github.com/specialistvlad/ciproject/internal/registry"
	"github.com/specialistvlad/ciproject/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDir = "../../examples/imod_coupler"

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestRun_RendersExampleTree(t *testing.T) {
	// --- Arrange ---
	cfg := newTestConfig(t, Config{ConfigPaths: []string{exampleDir}})
	testApp, out, logs := SetupAppTest(t, cfg, hcl.NewLoader(hcl.WithEnv(map[string]string{})))

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Self - Python scripts coupling components\n")
	assert.Contains(t, out.String(), "\n  Primod - ")
	assert.Contains(t, out.String(), "\n  IMODCollector - ")
	assert.Contains(t, logs.String(), "Project tree resolved.")

	snap, ok := testApp.Snapshots().Current()
	require.True(t, ok)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, "Self", snap.Tree.Root.Project.ID())
}

func TestRun_UnresolvedReferenceFailsWholeSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(`
		project "Self" {
			description = "broken"
			templates   = ["Linux"]
		}
	`), 0o600))
	cfg := newTestConfig(t, Config{ConfigPaths: []string{dir}})
	testApp, out, logs := SetupAppTest(t, cfg, hcl.NewLoader())

	err := testApp.Run(context.Background())

	var unresolved *registry.UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Linux", unresolved.ID)
	assert.Empty(t, out.String(), "nothing may be rendered for a rejected snapshot")
	assert.Contains(t, logs.String(), "Configuration sync failed.")
	_, published := testApp.Snapshots().Current()
	assert.False(t, published)
}

type failingLoader struct{ err error }

func (l failingLoader) Load(context.Context, ...string) (*config.Model, error) {
	return nil, l.err
}

func TestLoad_WrapsLoaderError(t *testing.T) {
	boom := errors.New("boom")
	cfg := newTestConfig(t, Config{ConfigPaths: []string{"anything"}})
	testApp, _, _ := SetupAppTest(t, cfg, failingLoader{err: boom})

	_, err := testApp.Load(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestValidate(t *testing.T) {
	loader := hcl.NewLoader(hcl.WithEnv(map[string]string{}))

	assert.NoError(t, Validate(context.Background(), loader, "", exampleDir))
	assert.NoError(t, Validate(context.Background(), loader, "Primod", exampleDir))
	assert.Error(t, Validate(context.Background(), loader, "Unknown", exampleDir))
}

func TestRun_JSONLogs(t *testing.T) {
	cfg := newTestConfig(t, Config{ConfigPaths: []string{exampleDir}, Output: render.FormatJSON, LogFormat: "json"})
	out, logs := &SafeBuffer{}, &SafeBuffer{}

	require.NoError(t, NewApp(out, logs, cfg, hcl.NewLoader()).Run(context.Background()))

	assert.Contains(t, out.String(), `"id": "Self"`)
	assert.Contains(t, logs.String(), `"msg":"Project tree resolved."`)
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{ConfigPaths: []string{"."}})
		require.NoError(t, err)
		assert.Equal(t, render.FormatText, cfg.Output)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no paths", Config{}, "at least one configuration path"},
		{"blank path", Config{ConfigPaths: []string{" "}}, "must not be empty"},
		{"bad output", Config{ConfigPaths: []string{"."}, Output: "xml"}, "unknown output format"},
		{"bad log format", Config{ConfigPaths: []string{"."}, LogFormat: "xml"}, "invalid log-format"},
		{"bad log level", Config{ConfigPaths: []string{"."}, LogLevel: "loud"}, "invalid log-level"},
		{"negative debounce", Config{ConfigPaths: []string{"."}, Debounce: -time.Second}, "invalid debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
