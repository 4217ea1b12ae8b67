package kv

// Store is the durable string-keyed contract that habit and day-status
// persistence sit on. Implementations are synchronous and immediately
// durable: a Set is visible to the next Get in the same process.
type Store interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete is idempotent: deleting an absent key is not an error.
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	Path() string
}
