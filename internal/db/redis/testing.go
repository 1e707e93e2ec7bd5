package redis

import "github.com/redis/rueidis"

// NewStoreForTest creates a Store bound to the provided rueidis client (test-only).
func NewStoreForTest(c rueidis.Client) *Store {
	return &Store{client: c, dial: rueidis.NewClient}
}
