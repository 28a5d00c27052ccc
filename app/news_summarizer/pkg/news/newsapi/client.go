package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/gg/gson"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
)

// DefaultBaseURL newsapi.org v2 接口地址
const DefaultBaseURL = "https://newsapi.org/v2"

// Client NewsAPI 客户端
type Client struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// NewClient 创建一个新的 NewsAPI 客户端，language 为空时不限制语言
func NewClient(apiKey, baseURL, language string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

var _ news.Fetcher = (*Client)(nil)

// Source 文章来源
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article NewsAPI 文章
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// APIResponse /everything 接口响应
type APIResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

// Fetch 查询 /everything?q={company}
func (c *Client) Fetch(ctx context.Context, company string) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", company)
	if c.language != "" {
		q.Set("language", c.language)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, &news.StatusError{Provider: "newsapi", Code: res.StatusCode, Body: string(body)}
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	if apiResp.Status != "ok" {
		return nil, fmt.Errorf("newsapi returned status %q: %s %s", apiResp.Status, apiResp.Code, apiResp.Message)
	}
	logger.Log.Debugf("NewsAPI 返回 [%s] %d 篇: %s", company, len(apiResp.Articles), gson.ToString(apiResp.Articles))

	articles := make([]model.Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		art := model.Article{
			Title:   a.Title,
			Summary: a.Description,
			URL:     a.URL,
			Source:  a.Source.Name,
		}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			art.PublishedAt = t
		}
		articles = append(articles, art)
	}
	return articles, nil
}
