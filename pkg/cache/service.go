package cache

import "time"

// CacheService is a process-local cache of decoded values.
type CacheService interface {
	// Get returns the value and true when present and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value; a zero duration uses the cache default.
	Set(key string, value interface{}, duration time.Duration)

	Delete(key string)

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(prefix string)

	Flush()
}

// Fetch is a typed read-through: it returns the cached value for key, or
// calls load and caches a successful result for ttl.
func Fetch[T any](c CacheService, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if val, found := c.Get(key); found {
		if typed, ok := val.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(key, v, ttl)
	return v, nil
}
