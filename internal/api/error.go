package api

import "fmt"

// Error is a server-signaled failure: a non-2xx status or an envelope
// with success=false. Message carries the server's explanation when it
// sent one, the HTTP status text otherwise.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
}
