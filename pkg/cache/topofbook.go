package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joripage/lob-engine/pkg/lob"
)

const topOfBookKeyPrefix = "lob:tob:"

// TopOfBookCache keeps the latest best bid/ask per symbol in Redis so
// read-side services can serve quotes without touching the books.
type TopOfBookCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTopOfBookCache(client *redis.Client, ttl time.Duration) *TopOfBookCache {
	return &TopOfBookCache{
		client: client,
		ttl:    ttl,
	}
}

// Attach registers the cache as a top of book observer on every book of
// the manager. Write failures are logged and dropped.
func (c *TopOfBookCache) Attach(books *lob.BookManager) {
	books.RegisterTopOfBookCallback(func(top lob.TopOfBook) {
		if err := c.Set(context.Background(), top); err != nil {
			zap.S().Warnw("cache top of book fail", "symbol", top.Symbol, "err", err)
		}
	})
}

func (c *TopOfBookCache) Set(ctx context.Context, top lob.TopOfBook) error {
	data, err := json.Marshal(top)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, topOfBookKeyPrefix+top.Symbol, data, c.ttl).Err()
}

func (c *TopOfBookCache) Get(ctx context.Context, symbol string) (lob.TopOfBook, error) {
	var top lob.TopOfBook
	data, err := c.client.Get(ctx, topOfBookKeyPrefix+symbol).Bytes()
	if err != nil {
		return top, err
	}
	err = json.Unmarshal(data, &top)
	return top, err
}
