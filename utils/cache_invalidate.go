package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached responses after a successful mutation. Keys
// carry sha1 digests, so purging is a per-namespace prefix scan rather than a
// point delete.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

// PurgeNamespace drops every cached list and item response for one resource
// namespace ("event-types", "events", "members").
func (ci *CacheInvalidator) PurgeNamespace(ctx context.Context, ns string) {
	iter := ci.rdb.Scan(ctx, 0, "cache:"+ns+":*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}
