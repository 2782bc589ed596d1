package sqlite

// Schema DDL for the key-value store. A single table holds every
// record; keys are namespaced by convention (see pkg/types keys).
// IF NOT EXISTS keeps attach idempotent over existing data.
const createPantry = `CREATE TABLE IF NOT EXISTS pantry (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`
