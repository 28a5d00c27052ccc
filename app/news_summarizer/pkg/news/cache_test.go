package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

func init() {
	logger.Discard()
}

type memKV struct {
	data   map[string]string
	getErr error
	ttl    time.Duration
}

func (m *memKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestCachedFetch(t *testing.T) {
	calls := 0
	next := FetcherFunc(func(ctx context.Context, company string) ([]model.Article, error) {
		calls++
		return []model.Article{{Title: "Apple ships", Summary: "Apple shipped."}}, nil
	})
	kv := &memKV{data: map[string]string{}}
	c := NewCached(next, kv, time.Minute, "newsapi")

	for i := 0; i < 2; i++ {
		got, err := c.Fetch(context.Background(), "Apple")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(got) != 1 || got[0].Title != "Apple ships" {
			t.Errorf("unexpected articles %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
	if _, ok := kv.data["news:newsapi:apple"]; !ok {
		t.Errorf("expected cache key, got %v", kv.data)
	}
	if kv.ttl != time.Minute {
		t.Errorf("ttl = %v", kv.ttl)
	}
}

func TestCachedFetchRedisDown(t *testing.T) {
	next := FetcherFunc(func(ctx context.Context, company string) ([]model.Article, error) {
		return []model.Article{{Title: "x"}}, nil
	})
	c := NewCached(next, &memKV{data: map[string]string{}, getErr: errors.New("connection refused")}, time.Minute, "rss")
	got, err := c.Fetch(context.Background(), "IBM")
	if err != nil || len(got) != 1 {
		t.Errorf("Fetch() = %v, %v; want upstream result", got, err)
	}
}

func TestCachedFetchUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	next := FetcherFunc(func(ctx context.Context, company string) ([]model.Article, error) {
		return nil, boom
	})
	kv := &memKV{data: map[string]string{}}
	if _, err := NewCached(next, kv, time.Minute, "rss").Fetch(context.Background(), "IBM"); !errors.Is(err, boom) {
		t.Errorf("expected upstream error, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Error("errors must not be cached")
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Provider: "newsapi", Code: 401, Body: "unauthorized"}
	if err.Error() != "newsapi api error (status 401): unauthorized" {
		t.Errorf("Error() = %q", err.Error())
	}
}
