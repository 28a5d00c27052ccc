package analysis

import "github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"

// Classify 将复合情感分数映射为标签，没有中间阈值带
func Classify(score float64) model.Sentiment {
	switch {
	case score > 0:
		return model.Positive
	case score < 0:
		return model.Negative
	default:
		return model.Neutral
	}
}

// FinalVerdict 严格多数判定：某一标签必须同时严格大于另外两个，否则为 Neutral
func FinalVerdict(d model.SentimentDistribution) model.Sentiment {
	if d.Positive > d.Negative && d.Positive > d.Neutral {
		return model.Positive
	}
	if d.Negative > d.Positive && d.Negative > d.Neutral {
		return model.Negative
	}
	return model.Neutral
}
