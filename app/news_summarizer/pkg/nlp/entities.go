package nlp

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/llm"
)

const jsonSystemPrompt = "You are a JSON generator. Output a JSON string only."

const entityPrompt = `Extract the named entities from the following news summary.
Only include organizations, products and events. Keep each entity exactly as written in the text.
Respond with JSON only: {"entities": ["..."]}

Summary:
%s`

// LLMEntities 通过大模型抽取实体
type LLMEntities struct {
	llm llm.Completer
}

var _ EntityExtractor = (*LLMEntities)(nil)

// NewLLMEntities 创建大模型实体抽取器，c 可以是 OpenAI 兼容客户端或 Gemini
func NewLLMEntities(c llm.Completer) *LLMEntities {
	return &LLMEntities{llm: c}
}

// ExtractEntities 实现 EntityExtractor
func (e *LLMEntities) ExtractEntities(ctx context.Context, text string) ([]string, error) {
	var out struct {
		Entities []string `json:"entities"`
	}
	if err := llm.CompleteJSON(ctx, e.llm, jsonSystemPrompt, fmt.Sprintf(entityPrompt, text), &out); err != nil {
		return nil, fmt.Errorf("llm entities failed: %w", err)
	}

	entities := make([]string, 0, len(out.Entities))
	for _, ent := range out.Entities {
		if ent = strings.TrimSpace(ent); ent != "" {
			entities = append(entities, ent)
		}
	}
	return entities, nil
}

// DefaultGazetteer 离线实体词表: 实体名 -> 别名
var DefaultGazetteer = map[string][]string{
	"Apple":     {"apple inc", "iphone", "ipad", "macbook", "vision pro", "app store"},
	"Amazon":    {"amazon.com", "aws", "amazon web services", "prime video", "alexa"},
	"Tesla":     {"tesla inc", "cybertruck", "model y", "model 3", "autopilot"},
	"Microsoft": {"azure", "windows", "xbox", "copilot", "openai"},
	"Google":    {"alphabet", "android", "youtube", "gemini", "pixel"},
	"Meta":      {"facebook", "instagram", "whatsapp", "threads", "oculus"},
	"Netflix":   {"netflix inc"},
	"Samsung":   {"samsung electronics", "galaxy"},
	"IBM":       {"watsonx", "red hat"},
	"WWDC":      {"worldwide developers conference"},
	"CES":       {"consumer electronics show"},
	"SEC":       {"securities and exchange commission"},
	"FTC":       {"federal trade commission"},
}

type gazetteerEntry struct {
	name    string
	pattern *regexp.Regexp
}

// Gazetteer 基于词表匹配的实体抽取，不依赖外部服务
type Gazetteer struct {
	entries []gazetteerEntry
}

var _ EntityExtractor = (*Gazetteer)(nil)

// NewGazetteer 根据词表创建抽取器，names 为空时使用 DefaultGazetteer
func NewGazetteer(names map[string][]string) *Gazetteer {
	if len(names) == 0 {
		names = DefaultGazetteer
	}

	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	g := &Gazetteer{entries: make([]gazetteerEntry, 0, len(keys))}
	for _, name := range keys {
		alts := []string{regexp.QuoteMeta(name)}
		for _, alias := range names[name] {
			alts = append(alts, regexp.QuoteMeta(alias))
		}
		g.entries = append(g.entries, gazetteerEntry{
			name:    name,
			pattern: regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`),
		})
	}
	return g
}

// ExtractEntities 按实体在文本中首次出现的位置排序返回
func (g *Gazetteer) ExtractEntities(_ context.Context, text string) ([]string, error) {
	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for _, e := range g.entries {
		if loc := e.pattern.FindStringIndex(text); loc != nil {
			hits = append(hits, hit{name: e.name, pos: loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	entities := make([]string, len(hits))
	for i, h := range hits {
		entities[i] = h.name
	}
	return entities, nil
}
