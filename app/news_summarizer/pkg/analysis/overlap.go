package analysis

import "github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"

// Overlap 统计话题在多少篇文章中出现：出现多于一次为 common，恰好一次为 unique
func Overlap(topics [][]string) model.TopicOverlap {
	order := NewTopicSet(0)
	counts := make(map[string]int)
	for _, articleTopics := range topics {
		// 每篇文章内只计一次
		for _, t := range topicSetOf(articleTopics).Items() {
			order.Add(t)
			counts[t]++
		}
	}

	overlap := model.TopicOverlap{Common: []string{}, Unique: []string{}}
	for _, t := range order.Items() {
		if counts[t] > 1 {
			overlap.Common = append(overlap.Common, t)
		} else {
			overlap.Unique = append(overlap.Unique, t)
		}
	}
	return overlap
}
