// Package cache holds the in-process caches placed in front of the
// question store.
package cache

// Cache is a bounded key/value cache. Implementations are safe for
// concurrent use.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
	Delete(key K)
	Purge()
}
