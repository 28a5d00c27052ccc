// Package llm 封装大模型调用：限流、429 退避重试与 JSON 结果清洗。
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// Completer 单轮对话补全
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// Client 基于 eino ChatModel 的补全客户端
type Client struct {
	chatModel  model.BaseChatModel
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

var _ Completer = (*Client)(nil)

// Option 客户端选项
type Option func(*Client)

// WithRetry 设置 429 重试次数与初始退避
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// NewLimiter 按 RPM/QPS 创建限流器
func NewLimiter(cc config.ConcurrencyConfig) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(cc.RPM)/60.0), cc.QPS)
}

// New 使用已有的 ChatModel 创建客户端，limiter 为 nil 时不限流
func New(cm model.BaseChatModel, limiter *rate.Limiter, opts ...Option) *Client {
	c := &Client{
		chatModel:  cm,
		limiter:    limiter,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewOpenAI 创建 OpenAI 兼容接口的客户端
func NewOpenAI(ctx context.Context, cfg config.LLMConfig, limiter *rate.Limiter, opts ...Option) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return New(cm, limiter, opts...), nil
}

// Complete 发送 system + user 消息，遇到限流错误时指数退避重试
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		messages := []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(user),
		}
		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			if !isRateLimited(err) {
				return "", fmt.Errorf("llm generate failed: %w", err)
			}
			lastErr = err
			if i < c.maxRetries {
				delay := c.baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("LLM 被限流，%v 后重试 (%d/%d)", delay, i+1, c.maxRetries)
				if err := sleep(ctx, delay); err != nil {
					return "", err
				}
			}
			continue
		}
		return resp.Content, nil
	}
	return "", fmt.Errorf("llm generate failed after retries: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CleanJSON 去掉模型常见的 markdown 代码块包裹
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CompleteJSON 请求 JSON 输出并解析到 v，解析失败时重新请求
func CompleteJSON(ctx context.Context, c Completer, system, user string, v any) error {
	var lastErr error
	for i := 0; i <= defaultMaxRetries; i++ {
		content, err := c.Complete(ctx, system, user)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(CleanJSON(content)), v); err != nil {
			lastErr = err
			logger.Log.Debugf("LLM 输出不是合法 JSON (%d/%d): %v", i+1, defaultMaxRetries+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("json unmarshal: %w", lastErr)
}
