package types

// Source tags which path produced a read result: the remote service or
// the local fallback. Callers branch on it instead of inspecting
// errors.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)
