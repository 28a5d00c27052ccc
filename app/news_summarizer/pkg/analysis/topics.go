// Package analysis 实现报告合成的核心逻辑：话题集合、情感分类、覆盖差异、
// 话题重叠、最终结论以及报告渲染。所有函数都是纯函数，不持有跨调用状态。
package analysis

// TopicSet 按首次出现顺序去重的话题集合
type TopicSet struct {
	items []string
	index map[string]struct{}
}

// NewTopicSet 创建话题集合
func NewTopicSet(capacity int) *TopicSet {
	return &TopicSet{
		items: make([]string, 0, capacity),
		index: make(map[string]struct{}, capacity),
	}
}

// Add 添加话题，已存在则忽略
func (s *TopicSet) Add(topic string) {
	if _, ok := s.index[topic]; ok {
		return
	}
	s.index[topic] = struct{}{}
	s.items = append(s.items, topic)
}

// Contains 判断话题是否存在
func (s *TopicSet) Contains(topic string) bool {
	_, ok := s.index[topic]
	return ok
}

// Len 话题数量
func (s *TopicSet) Len() int { return len(s.items) }

// Items 返回话题副本
func (s *TopicSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// BuildTopics 合并关键词与实体，按精确字符串去重，先关键词后实体
func BuildTopics(keywords, entities []string) []string {
	set := NewTopicSet(len(keywords) + len(entities))
	for _, k := range keywords {
		set.Add(k)
	}
	for _, e := range entities {
		set.Add(e)
	}
	return set.Items()
}

// topicSetOf 将有序话题列表转为集合
func topicSetOf(topics []string) *TopicSet {
	set := NewTopicSet(len(topics))
	for _, t := range topics {
		set.Add(t)
	}
	return set
}
