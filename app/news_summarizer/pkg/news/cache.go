package news

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// KV 缓存所需的 Redis 命令子集，*redis.Client 满足该接口
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cached 为 Fetcher 加一层 Redis 缓存，缓存读写失败只记录日志
type Cached struct {
	next   Fetcher
	kv     KV
	ttl    time.Duration
	prefix string
}

var _ Fetcher = (*Cached)(nil)

// NewCached 创建带缓存的 Fetcher，prefix 通常为新闻源名称
func NewCached(next Fetcher, kv KV, ttl time.Duration, prefix string) *Cached {
	return &Cached{next: next, kv: kv, ttl: ttl, prefix: prefix}
}

// NewRedis 创建 Redis 客户端并检查连通性
func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *Cached) key(company string) string {
	return "news:" + c.prefix + ":" + strings.ToLower(strings.TrimSpace(company))
}

// Fetch 实现 Fetcher
func (c *Cached) Fetch(ctx context.Context, company string) ([]model.Article, error) {
	key := c.key(company)

	val, err := c.kv.Get(ctx, key).Result()
	switch {
	case err == nil:
		var articles []model.Article
		if err := json.Unmarshal([]byte(val), &articles); err == nil {
			logger.Log.Debugf("命中新闻缓存 [%s]", key)
			return articles, nil
		}
		logger.Log.Warnf("新闻缓存数据损坏 [%s]", key)
	case !errors.Is(err, redis.Nil):
		logger.Log.Warnf("读取新闻缓存失败 [%s]: %v", key, err)
	}

	articles, err := c.next.Fetch(ctx, company)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(articles)
	if err != nil {
		logger.Log.Warnf("序列化新闻缓存失败 [%s]: %v", key, err)
		return articles, nil
	}
	if err := c.kv.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.Warnf("写入新闻缓存失败 [%s]: %v", key, err)
	}
	return articles, nil
}
