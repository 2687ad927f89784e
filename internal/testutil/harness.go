// Package testutil provides an end-to-end harness for running the
// application against an HCL configuration written to a temporary directory.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/ciproject/internal/app"
	"github.com/specialistvlad/ciproject/internal/hcl"
	"github.com/specialistvlad/ciproject/internal/render"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// WriteFiles writes files, keyed by relative path, under a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

// RunIntegrationTest runs the application once over files with an empty
// environment and the given root project and output format.
func RunIntegrationTest(t *testing.T, files map[string]string, root string, output render.Format) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, root, output)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, root string, output render.Format) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: []string{dir},
		RootProject: root,
		Output:      output,
	})
	require.NoError(t, err)

	testApp, out, logs := app.SetupAppTest(t, cfg, hcl.NewLoader(hcl.WithEnv(map[string]string{})))
	runErr := testApp.Run(ctx)

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       testApp,
	}
}
