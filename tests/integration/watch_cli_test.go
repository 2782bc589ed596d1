package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"
)

// watchTimeout bounds how long a test waits for one emitted line. The
// observer's poll backstop runs every 100ms in test environments.
const watchTimeout = 10 * time.Second

// startWatch launches "pantry watch <key>" and returns the running
// command plus a channel of decoded output lines. The channel closes
// when the process stops writing.
func startWatch(t *testing.T, env *TestEnv, key string) (*exec.Cmd, <-chan map[string]any) {
	t.Helper()

	cmd := env.CommandPantry("watch", key)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		t.Fatalf("start watch: %v", err)
	}

	lines := make(chan map[string]any, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			var line map[string]any
			if err := json.Unmarshal(scanner.Bytes(), &line); err == nil {
				lines <- line
			}
		}
	}()
	return cmd, lines
}

// nextLine receives one decoded line or fails the test on timeout.
func nextLine(t *testing.T, lines <-chan map[string]any) map[string]any {
	t.Helper()
	select {
	case line, ok := <-lines:
		if !ok {
			t.Fatal("watch output ended unexpectedly")
		}
		return line
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for a watch line")
	}
	return nil
}

// stopWatch interrupts the process and verifies a clean shutdown.
func stopWatch(t *testing.T, cmd *exec.Cmd, lines <-chan map[string]any) {
	t.Helper()

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("interrupt watch: %v", err)
	}
	for range lines {
		// Drain until the process closes stdout.
	}
	if err := cmd.Wait(); err != nil {
		t.Errorf("watch should exit cleanly on interrupt, got %v", err)
	}
}

func TestWatchEmitsCurrentValueThenChanges(t *testing.T) {
	env := NewTestEnv(t)

	cmd, lines := startWatch(t, env, "user_profile")

	// The first line is the current state: nothing saved yet.
	first := nextLine(t, lines)
	if first["key"] != "user_profile" {
		t.Errorf("expected key user_profile, got %v", first["key"])
	}
	if first["value"] != nil {
		t.Errorf("expected a null value for an absent key, got %v", first["value"])
	}

	// A write from another process shows up as a change line.
	env.MustRunPantry("profile", "set", "--username", "nadia")

	deadline := time.After(watchTimeout)
	for {
		var line map[string]any
		select {
		case l, ok := <-lines:
			if !ok {
				t.Fatal("watch output ended before the change arrived")
			}
			line = l
		case <-deadline:
			t.Fatal("timed out waiting for the profile change")
		}

		value, ok := line["value"].(map[string]any)
		if !ok {
			continue
		}
		if value["username"] == "nadia" {
			stopWatch(t, cmd, lines)
			return
		}
	}
}

func TestWatchSeesValueSavedBeforeStart(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRunPantry("profile", "set", "--username", "omar")

	cmd, lines := startWatch(t, env, "user_profile")

	first := nextLine(t, lines)
	value, ok := first["value"].(map[string]any)
	if !ok {
		t.Fatalf("expected the stored profile as the first line, got %v", first)
	}
	if value["username"] != "omar" {
		t.Errorf("expected username omar, got %v", value["username"])
	}

	stopWatch(t, cmd, lines)
}
