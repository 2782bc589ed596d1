package types

import "encoding/json"

// Draft is an unsubmitted form snapshot stored under a draft key.
// The payload is kept opaque; callers decode it into their own form
// shape. SavedAt is mirrored in the companion timestamp record.
type Draft struct {
	SavedAt string          `json:"saved_at"` // RFC3339.
	Payload json.RawMessage `json:"payload"`
}
