// Package integration exercises the pantry binary end to end: every
// test runs the real CLI as a subprocess against an isolated config
// and data directory, with the remote recipe service played by an
// in-process fake (see fakeservice.go) or left unreachable to force
// the offline paths.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// deadAPIURL is a loopback address nothing listens on (binding port 1
// needs root), so connections are refused immediately. Environments
// point the CLI here by default; tests that need a reachable service
// set TestEnv.APIURL to a fake server's URL instead.
const deadAPIURL = "http://127.0.0.1:1"

var (
	// pantryBin is the path to the built pantry binary.
	pantryBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetPantryBin sets the path to the pantry binary (called from TestMain).
func SetPantryBin(path string) {
	pantryBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// ensureBinary fails the test when the binary did not build, and
// returns its path otherwise.
func ensureBinary(t *testing.T) string {
	t.Helper()
	if buildErr != nil {
		t.Fatalf("failed to build pantry: %v", buildErr)
	}
	if pantryBin == "" {
		t.Fatal("pantry binary not built (pantryBin is empty)")
	}
	return pantryBin
}

// TestEnv provides an isolated test environment with its own config
// and data directory. Its config.yaml points the CLI at an unreachable
// service address; set APIURL to route commands to a fake server.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	APIURL  string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	ensureBinary(t)

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	// Short timeout and poll interval keep the offline and watch tests
	// fast without changing behavior.
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\n" +
		"data_dir: " + dataDir + "\n" +
		"api:\n" +
		"  base_url: " + deadAPIURL + "\n" +
		"  timeout_seconds: 2\n" +
		"watch:\n" +
		"  poll_interval_ms: 100\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// AppendConfig appends raw YAML to the environment's config.yaml. The
// keys must not collide with the ones NewTestEnv writes.
func (e *TestEnv) AppendConfig(yaml string) {
	e.t.Helper()
	path := filepath.Join(e.Config, "config.yaml")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		e.t.Fatalf("failed to open config for append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(yaml); err != nil {
		e.t.Fatalf("failed to append config: %v", err)
	}
}

// CmdResult holds the result of a pantry command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandPantry prepares a pantry invocation against this environment
// without running it. Used by tests that stream output or signal the
// process themselves.
func (e *TestEnv) CommandPantry(args ...string) *exec.Cmd {
	allArgs := []string{"--config-dir", e.Config, "--data-dir", e.DataDir}
	if e.APIURL != "" {
		allArgs = append(allArgs, "--api-url", e.APIURL)
	}
	allArgs = append(allArgs, args...)
	return exec.Command(pantryBin, allArgs...)
}

// RunPantry executes the pantry CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunPantry(args ...string) CmdResult {
	e.t.Helper()

	cmd := e.CommandPantry(args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run pantry: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunPantry executes the pantry CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunPantry(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunPantry(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("pantry %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}
