// Package narration 将结论句翻译为目标语言并合成语音。
package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText 没有可播报的文本
var ErrEmptyText = errors.New("narration text is empty")

// Narrator 播报接口，返回音频句柄（文件路径或对象地址）
type Narrator interface {
	Narrate(ctx context.Context, text string) (string, error)
}

// Translator 文本翻译
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Synthesizer 文本转语音，返回音频数据
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// Store 音频存储
type Store interface {
	Save(ctx context.Context, data []byte) (string, error)
}

// Pipeline 翻译 -> 合成 -> 存储
type Pipeline struct {
	translator Translator
	tts        Synthesizer
	store      Store
	lang       string
}

var _ Narrator = (*Pipeline)(nil)

// NewPipeline 创建播报流水线，translator 为 nil 时直接朗读原文
func NewPipeline(translator Translator, tts Synthesizer, store Store, lang string) *Pipeline {
	return &Pipeline{translator: translator, tts: tts, store: store, lang: lang}
}

// Narrate 实现 Narrator
func (p *Pipeline) Narrate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}

	if p.translator != nil {
		translated, err := p.translator.Translate(ctx, text, p.lang)
		if err != nil {
			return "", fmt.Errorf("translate failed: %w", err)
		}
		text = strings.TrimSpace(translated)
		if text == "" {
			return "", ErrEmptyText
		}
	}

	audio, err := p.tts.Synthesize(ctx, text, p.lang)
	if err != nil {
		return "", fmt.Errorf("synthesize failed: %w", err)
	}

	handle, err := p.store.Save(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("save audio failed: %w", err)
	}
	return handle, nil
}
