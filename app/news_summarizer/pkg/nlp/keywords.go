package nlp

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"
)

var (
	wordPunct     = regexp.MustCompile(`\w+|[^\w\s]+`)
	numberPattern = regexp.MustCompile(`\d+|[a-zA-Z]+\d+[a-zA-Z]*`)
)

// Rake RAKE 关键词抽取，结果再经过长度、数字、停用词和词性过滤
type Rake struct {
	stopWords map[string]struct{}
}

var _ KeywordExtractor = (*Rake)(nil)

// NewRake 使用英文停用词表创建抽取器
func NewRake() *Rake {
	return &Rake{stopWords: englishStopWords}
}

// ExtractKeywords 实现 KeywordExtractor
func (r *Rake) ExtractKeywords(_ context.Context, text string) ([]string, error) {
	phrases := r.RankedPhrases(text)
	if len(phrases) == 0 {
		return []string{}, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("pos tagging failed: %w", err)
	}
	// 同一词多次出现时以第一次的词性为准
	tags := make(map[string]string)
	for _, tok := range doc.Tokens() {
		if _, ok := tags[tok.Text]; !ok {
			tags[tok.Text] = tok.Tag
		}
	}

	return r.filter(phrases, tags), nil
}

// filter 只保留能在原文中按原样找到、且不是动词的短语
func (r *Rake) filter(phrases []string, tags map[string]string) []string {
	seen := make(map[string]struct{})
	keywords := []string{}
	for _, p := range phrases {
		if len(p) <= 2 || numberPattern.MatchString(p) {
			continue
		}
		tag, ok := tags[p]
		if !ok || strings.HasPrefix(tag, "VB") {
			continue
		}
		lower := strings.ToLower(p)
		if _, stop := r.stopWords[lower]; stop {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
	}
	return keywords
}

// RankedPhrases 按 RAKE 分数降序返回候选短语（小写），分数相同时按短语倒序
func (r *Rake) RankedPhrases(text string) []string {
	var phrases [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}

	for _, tok := range wordPunct.FindAllString(strings.ToLower(text), -1) {
		if _, stop := r.stopWords[tok]; stop || !isWord(tok) {
			flush()
			continue
		}
		current = append(current, tok)
	}
	flush()

	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, p := range phrases {
		for _, w := range p {
			freq[w]++
			degree[w] += len(p)
		}
	}

	type ranked struct {
		phrase string
		score  float64
	}
	scores := make([]ranked, 0, len(phrases))
	for _, p := range phrases {
		var score float64
		for _, w := range p {
			score += float64(degree[w]) / float64(freq[w])
		}
		scores = append(scores, ranked{phrase: strings.Join(p, " "), score: score})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].phrase > scores[j].phrase
	})

	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.phrase
	}
	return out
}

func isWord(tok string) bool {
	for _, r := range tok {
		if r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || r > 127 {
			return true
		}
	}
	return false
}
