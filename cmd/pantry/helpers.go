// Shared helpers for pantry CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/platewise/recipebox/internal/api"
	"github.com/platewise/recipebox/pkg/recipebox"
	"github.com/platewise/recipebox/pkg/types"
)

// exitError carries a process exit code through RunE so deferred
// cleanup still runs before main exits.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysErrorf wraps a system failure so main exits with exitSysError.
// Errors without a code exit with exitUserError.
func sysErrorf(format string, a ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, a...)}
}

// openBox resolves the data directory and opens the recipebox client.
// The caller must defer box.Close().
func openBox() (*recipebox.Box, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, sysErrorf("resolve data dir: %w", err)
	}

	baseURL := flagAPIURL
	if baseURL == "" {
		baseURL = cfg.GetString(cfgKeyAPIBaseURL)
	}

	box, err := recipebox.Open(recipebox.Options{
		Config: types.Config{
			Backend: cfg.GetString(cfgKeyBackend),
			DataDir: dataDir,
		},
		BaseURL:      baseURL,
		Timeout:      time.Duration(cfg.GetInt(cfgKeyAPITimeout)) * time.Second,
		PollInterval: time.Duration(cfg.GetInt(cfgKeyPollInterval)) * time.Millisecond,
		Logger:       logger,
	})
	if err != nil {
		return nil, sysErrorf("open recipebox: %w", err)
	}
	return box, nil
}

// reviewUser returns the identifier attached to created reviews:
// config user.name if set, else the profile username, else "anonymous".
func reviewUser(box *recipebox.Box) string {
	return box.Profile.UserIdentifier(cfg.GetString(cfgKeyUserName))
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// isRemoteRejection reports whether err is a server-signaled failure
// rather than a transport problem. Rejections are user errors (bad id,
// bad payload); transport failures are system errors.
func isRemoteRejection(err error) bool {
	var apiErr *api.Error
	return errors.As(err, &apiErr)
}

// remoteErrorf wraps a call failure with the exit code matching its
// kind: validation problems and server rejections are user errors,
// transport failures are system errors.
func remoteErrorf(err error, format string, a ...any) error {
	if errors.Is(err, types.ErrInvalidInput) || isRemoteRejection(err) {
		return fmt.Errorf(format, a...)
	}
	return sysErrorf(format, a...)
}

// truncate shortens s for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
