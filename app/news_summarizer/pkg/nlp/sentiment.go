package nlp

import (
	"context"
	"fmt"
	"math"

	"github.com/jonreiter/govader"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/llm"
)

// Vader 基于 VADER 词典的情感分析
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ SentimentAnalyzer = (*Vader)(nil)

// NewVader 创建 VADER 分析器，可在多个请求之间共享
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound 实现 SentimentAnalyzer
func (v *Vader) Compound(_ context.Context, text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}

const sentimentPrompt = `Rate the overall sentiment of the following news summary.
Respond with JSON only: {"score": <number between -1 and 1>}
Negative numbers are negative sentiment, 0 is neutral.

Summary:
%s`

// LLMSentiment 通过大模型打分
type LLMSentiment struct {
	llm llm.Completer
}

var _ SentimentAnalyzer = (*LLMSentiment)(nil)

// NewLLMSentiment 创建大模型情感分析器
func NewLLMSentiment(c llm.Completer) *LLMSentiment {
	return &LLMSentiment{llm: c}
}

// Compound 实现 SentimentAnalyzer，结果截断到 [-1, 1]
func (s *LLMSentiment) Compound(ctx context.Context, text string) (float64, error) {
	var out struct {
		Score float64 `json:"score"`
	}
	if err := llm.CompleteJSON(ctx, s.llm, jsonSystemPrompt, fmt.Sprintf(sentimentPrompt, text), &out); err != nil {
		return 0, fmt.Errorf("llm sentiment failed: %w", err)
	}
	return math.Max(-1, math.Min(1, out.Score)), nil
}
