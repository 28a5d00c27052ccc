package rss

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
)

// GoogleNews Google News 搜索订阅地址模板
const GoogleNews = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

const maxContentLen = 2000

// Client 多个 RSS 源并发抓取。包含 %s 的地址视为搜索订阅，会代入公司名；
// 其余地址为固定订阅，只保留标题或描述提到公司名的条目。
type Client struct {
	feeds        []string
	fetchContent bool
	limiter      *rate.Limiter
}

var _ news.Fetcher = (*Client)(nil)

// NewClient 创建 RSS 客户端，feeds 为空时使用 Google News
func NewClient(feeds []string, fetchContent bool) *Client {
	if len(feeds) == 0 {
		feeds = []string{GoogleNews}
	}
	return &Client{
		feeds:        feeds,
		fetchContent: fetchContent,
		limiter:      rate.NewLimiter(rate.Limit(2), 2),
	}
}

// Fetch 实现 news.Fetcher，结果按订阅顺序拼接
func (c *Client) Fetch(ctx context.Context, company string) ([]model.Article, error) {
	results := make([][]model.Article, len(c.feeds))
	errs := make([]error, len(c.feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range c.feeds {
		g.Go(func() error {
			articles, err := c.fetchFeed(gctx, feed, company)
			if err != nil {
				// 单个源失败不影响其他源
				logger.Log.Warnf("抓取 RSS 失败 [%s]: %v", feed, err)
				errs[i] = err
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	_ = g.Wait()

	var all []model.Article
	failed := 0
	for i := range c.feeds {
		if errs[i] != nil {
			failed++
			continue
		}
		all = append(all, results[i]...)
	}
	if failed == len(c.feeds) {
		return nil, fmt.Errorf("all rss feeds failed: %w", errors.Join(errs...))
	}
	return all, nil
}

func (c *Client) fetchFeed(ctx context.Context, feed, company string) ([]model.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	search := strings.Contains(feed, "%s")
	feedURL := feed
	if search {
		feedURL = fmt.Sprintf(feed, url.QueryEscape(company))
	}

	parsed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS: %w", err)
	}

	articles := make([]model.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		summary := cleanHTML(item.Description)
		if !search && !mentions(item.Title+" "+summary, company) {
			continue
		}
		if summary == "" && c.fetchContent && item.Link != "" {
			summary = fetchContent(item.Link)
		}

		art := model.Article{
			Title:   item.Title,
			Summary: summary,
			URL:     item.Link,
			Source:  parsed.Title,
		}
		if item.PublishedParsed != nil {
			art.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// cleanHTML 去掉描述中的 HTML 标签
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// fetchContent 抓取正文，失败时返回空串
func fetchContent(link string) string {
	article, err := readability.FromURL(link, 30*time.Second)
	if err != nil {
		logger.Log.Debugf("抓取正文失败 [%s]: %v", link, err)
		return ""
	}
	return truncate(strings.TrimSpace(article.TextContent), maxContentLen)
}

// truncate 截断到不超过 n 字节，不切开多字节字符
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func mentions(text, company string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(company))
}
