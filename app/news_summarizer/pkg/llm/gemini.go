package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// ErrEmptyResponse 模型没有返回任何文本
var ErrEmptyResponse = errors.New("llm returned empty response")

// Gemini 基于 Google Gemini 的补全客户端
type Gemini struct {
	client    *genai.Client
	modelName string
	limiter   *rate.Limiter
}

var _ Completer = (*Gemini)(nil)

// NewGemini 创建 Gemini 客户端，使用完毕需调用 Close
func NewGemini(ctx context.Context, apiKey, modelName string, limiter *rate.Limiter) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini 初始化失败: %w", err)
	}
	return &Gemini{client: client, modelName: modelName, limiter: limiter}, nil
}

// Complete 实现 Completer
func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	// GenerativeModel 的字段不是并发安全的，每次调用单独创建
	m := g.client.GenerativeModel(g.modelName)
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Close 释放底层连接
func (g *Gemini) Close() error {
	return g.client.Close()
}

// responseText 取第一个候选的全部文本片段
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		break
	}
	return strings.TrimSpace(sb.String())
}
