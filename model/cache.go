package model

import (
	"context"
	"os"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redis_store "github.com/eko/gocache/store/redis/v4"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
)

var cacheManager *cache.Cache[any]

func init() {
	CacheManager()
}

// CacheManager 默认内存缓存，配置 BILI_REDIS_ADDR 后改用 redis
func CacheManager() *cache.Cache[any] {
	if cacheManager != nil {
		return cacheManager
	}

	if addr := os.Getenv("BILI_REDIS_ADDR"); len(addr) > 0 {
		redisStore := redis_store.NewRedis(redis.NewClient(&redis.Options{Addr: addr}))
		cacheManager = cache.New[any](redisStore)
		return cacheManager
	}

	// https://github.com/dgraph-io/ristretto
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     (1 << 30) / 2, // 512MB???
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	cacheManager = cache.New[any](ristrettoStore)

	return cacheManager
}

func WithCache(key string, cacheOption store.Option, compute func() interface{}) interface{} {
	var tmpCache = CacheManager()
	resp, err := tmpCache.Get(context.Background(), key)
	if err == nil && resp != nil {
		return resp
	}
	resp = compute()
	// 失败结果不进缓存，上游恢复后下一次请求立即生效
	if _, failed := resp.(Error); failed {
		return resp
	}
	_ = tmpCache.Set(context.Background(), key, resp, cacheOption)
	return resp
}
