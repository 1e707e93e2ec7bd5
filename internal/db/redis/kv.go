package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/moviesearch/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.do(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Get().Key(key).Build()
	})
	if err != nil {
		return nil, err
	}
	data, err := res.AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value at the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Set().Key(key).Value(string(value)).Build()
	})
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.set(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Set().Key(key).Value(string(value)).Ex(ttl).Build()
	})
}

func (s *Store) set(ctx context.Context, build func(b rueidis.Builder) rueidis.Completed) error {
	res, err := s.do(ctx, build)
	if err != nil {
		return err
	}
	if err := res.Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}
