package types

import "errors"

// Pantry defines the interface for durable key-value storage access.
// Callers attach to a backend, read and write raw JSON payloads by key,
// and detach when done. All methods are safe for concurrent use.
type Pantry interface {
	// Attach connects the Pantry to the backend described by config.
	// Creates the DataDir if it does not exist. Existing data is kept;
	// attach never wipes the store. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, all other operations return ErrDetached.
	Detach() error

	// Get returns the payload stored under key.
	// Returns ErrKeyNotFound if the key has never been written or was
	// deleted.
	Get(key string) ([]byte, error)

	// Put stores the payload under key, replacing any previous value.
	Put(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Exists reports whether the key currently holds a value.
	Exists(key string) (bool, error)

	// Keys returns all keys with the given prefix, sorted. An empty
	// prefix returns every key.
	Keys(prefix string) ([]string, error)
}

// Pantry lifecycle and access errors.
var (
	ErrDetached        = errors.New("pantry is detached")
	ErrAlreadyAttached = errors.New("pantry is already attached")
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidKey      = errors.New("invalid key")
)
