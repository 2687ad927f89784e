package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/ciproject/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging whose output and logs are
// captured in buffers. Set CIPROJECT_TEST_LOGS=true to dump the logs.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logs, cfg, loader)

	t.Cleanup(func() {
		if os.Getenv("CIPROJECT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
