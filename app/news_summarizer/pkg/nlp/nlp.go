// Package nlp 提供文章文本分析所需的协作者：语言检测、关键词、实体与情感。
package nlp

import "context"

// LanguageDetector 语言检测，检测失败时返回 false
type LanguageDetector interface {
	IsEnglish(text string) bool
}

// KeywordExtractor 关键词抽取
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
}

// EntityExtractor 实体抽取，只返回组织、产品和事件
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]string, error)
}

// SentimentAnalyzer 返回 [-1, 1] 区间的复合情感分数
type SentimentAnalyzer interface {
	Compound(ctx context.Context, text string) (float64, error)
}
