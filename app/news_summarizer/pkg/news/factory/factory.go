package factory

import (
	"fmt"
	"time"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news/newsapi"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news/rss"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news/searxng"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news/tavily"
)

// NewFetcher 根据配置创建新闻源，kv 不为 nil 时套一层缓存
func NewFetcher(cfg *config.Config, kv news.KV) (news.Fetcher, error) {
	var f news.Fetcher
	provider := cfg.News.Provider

	switch provider {
	case "newsapi":
		if cfg.News.NewsAPI.APIKey == "" {
			return nil, fmt.Errorf("newsapi api key is missing")
		}
		f = newsapi.NewClient(cfg.News.NewsAPI.APIKey, cfg.News.NewsAPI.BaseURL, cfg.News.NewsAPI.Language)

	case "tavily":
		if cfg.News.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		f = tavily.NewClient(cfg.News.Tavily.APIKey)

	case "searxng":
		if cfg.News.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		f = searxng.NewClient(cfg.News.SearXNG.BaseURL, cfg.News.SearXNG.Timeout)

	case "rss":
		f = rss.NewClient(cfg.News.RSS.Feeds, cfg.News.RSS.FetchContent)

	default:
		return nil, fmt.Errorf("%w: %s", news.ErrUnknownProvider, provider)
	}

	if kv != nil {
		f = news.NewCached(f, kv, time.Duration(cfg.Cache.TTL)*time.Second, provider)
	}
	return f, nil
}
