package integration

import (
	"errors"
	"strings"
	"testing"

	"github.com/platewise/recipebox/internal/sqlite"
	"github.com/platewise/recipebox/pkg/types"
)

// seedRaw writes a raw JSON document straight into the environment's
// store, bypassing the CLI. Attaching creates the data directory and
// schema when the CLI has not run yet.
func seedRaw(t *testing.T, e *TestEnv, key string, value []byte) {
	t.Helper()

	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: e.DataDir}); err != nil {
		t.Fatalf("attach backend for seeding: %v", err)
	}
	defer backend.Detach()

	if err := backend.Put(key, value); err != nil {
		t.Fatalf("seed key %q: %v", key, err)
	}
}

// readRaw reads a key's stored bytes straight from the environment's
// store. Returns ok=false when the key is absent.
func readRaw(t *testing.T, e *TestEnv, key string) ([]byte, bool) {
	t.Helper()

	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: e.DataDir}); err != nil {
		t.Fatalf("attach backend for reading: %v", err)
	}
	defer backend.Detach()

	data, err := backend.Get(key)
	if err != nil {
		if errors.Is(err, types.ErrKeyNotFound) {
			return nil, false
		}
		t.Fatalf("read key %q: %v", key, err)
	}
	return data, true
}

// extractAfter returns the remainder of the first stdout line starting
// with prefix, trimmed. Fails the test when no line matches.
func extractAfter(t *testing.T, stdout, prefix string) string {
	t.Helper()

	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	t.Fatalf("no line with prefix %q in output:\n%s", prefix, stdout)
	return ""
}
