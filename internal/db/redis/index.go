package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/moviesearch/internal/db"
)

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	res, err := s.do(ctx, func(b rueidis.Builder) rueidis.Completed {
		return b.Arbitrary("FT.INFO").Args(name).Build()
	})
	if err != nil {
		return false, err
	}
	if err := res.Error(); err != nil {
		if isUnknownIndex(err) {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

// Redis 8 reports "Unknown index name", older RediSearch builds report "no such index".
func isUnknownIndex(err error) bool {
	return isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index")
}
