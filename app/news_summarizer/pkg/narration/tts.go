package narration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
)

// DefaultTTSURL Google 翻译语音接口
const DefaultTTSURL = "https://translate.google.com/translate_tts"

// maxChunk 接口单次请求的最大字符数
const maxChunk = 200

// GoogleTTS 分段请求 Google 翻译语音接口并拼接 MP3
type GoogleTTS struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

var _ Synthesizer = (*GoogleTTS)(nil)

// NewGoogleTTS 创建语音合成客户端
func NewGoogleTTS(baseURL string) *GoogleTTS {
	if baseURL == "" {
		baseURL = DefaultTTSURL
	}
	return &GoogleTTS{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(3), 1),
	}
}

// Synthesize 实现 Synthesizer
func (g *GoogleTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := SplitText(text, maxChunk)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		data, err := g.fetch(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio.Write(data)
	}
	logger.Log.Debugf("语音合成完成: %d 段, %d 字节", len(chunks), audio.Len())
	return audio.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", chunk)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	res, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts api error (status %d): %s", res.StatusCode, string(body))
	}
	return body, nil
}

// SplitText 按空白切分为不超过 limit 个字符的片段，超长单词强制截断
func SplitText(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if len(runes) == 0 {
			continue
		}

		need := len(runes)
		if currentLen > 0 {
			need++
		}
		if currentLen+need > limit {
			flush()
			need = len(runes)
		}
		if currentLen > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(string(runes))
		currentLen += need
	}
	flush()
	return chunks
}
