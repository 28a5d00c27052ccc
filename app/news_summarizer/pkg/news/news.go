// Package news 定义新闻源接口，各新闻源的实现位于子包中。
package news

import (
	"context"
	"errors"
	"fmt"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// ErrUnknownProvider 未知的新闻源
var ErrUnknownProvider = errors.New("unknown news provider")

// Fetcher 按公司名获取文章，返回顺序即新闻源给出的顺序，可能为空
type Fetcher interface {
	Fetch(ctx context.Context, company string) ([]model.Article, error)
}

// FetcherFunc 函数适配器
type FetcherFunc func(ctx context.Context, company string) ([]model.Article, error)

// Fetch 实现 Fetcher
func (f FetcherFunc) Fetch(ctx context.Context, company string) ([]model.Article, error) {
	return f(ctx, company)
}

// StatusError 新闻源返回了非 200 状态码
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.Code, e.Body)
}
