package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/llm"
)

var languageNames = map[string]string{
	"hi": "Hindi",
	"en": "English",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
}

// LLMTranslator 通过大模型翻译，c 可以是 OpenAI 兼容客户端或 Gemini
type LLMTranslator struct {
	llm llm.Completer
}

var _ Translator = (*LLMTranslator)(nil)

// NewLLMTranslator 创建大模型翻译器
func NewLLMTranslator(c llm.Completer) *LLMTranslator {
	return &LLMTranslator{llm: c}
}

// Translate 实现 Translator
func (t *LLMTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	name, ok := languageNames[target]
	if !ok {
		name = target
	}
	system := "You are a professional translator. Reply with the translation only, without quotes or explanations."
	user := fmt.Sprintf("Translate the following English text into %s:\n\n%s", name, text)
	return t.llm.Complete(ctx, system, user)
}

// DefaultGoogleTranslateURL Google 翻译公开接口
const DefaultGoogleTranslateURL = "https://translate.googleapis.com/translate_a/single"

// GoogleTranslator 调用 Google 翻译公开接口，无需密钥
type GoogleTranslator struct {
	baseURL string
	client  *http.Client
}

var _ Translator = (*GoogleTranslator)(nil)

// NewGoogleTranslator 创建 Google 翻译器，baseURL 为空时使用默认地址
func NewGoogleTranslator(baseURL string) *GoogleTranslator {
	if baseURL == "" {
		baseURL = DefaultGoogleTranslateURL
	}
	return &GoogleTranslator{baseURL: baseURL, client: &http.Client{Timeout: 15 * time.Second}}
}

// Translate 实现 Translator，源语言固定为英文
func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "en")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	res, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate error (status %d): %s", res.StatusCode, string(body))
	}

	// 响应形如 [[["译文","原文",...], ...], ...]
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return "", fmt.Errorf("unexpected translate response: %s", string(body))
	}
	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translate segments: %w", err)
	}
	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String(), nil
}
