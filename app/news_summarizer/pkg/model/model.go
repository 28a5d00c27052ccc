package model

import "time"

// DefaultTitle 文章缺少标题时的占位
const DefaultTitle = "No title"

// Sentiment 情感标签
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

// Article 新闻源返回的原始文章
type Article struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"` // 来源的 description 字段
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// DisplayTitle 标题为空时返回占位标题
func (a Article) DisplayTitle() string {
	if a.Title == "" {
		return DefaultTitle
	}
	return a.Title
}

// ArticleRecord 单篇已采纳文章的分析结果，创建后不再修改
type ArticleRecord struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Topics    []string  `json:"topics"` // 去重后的话题，按首次出现顺序
	URL       string    `json:"url,omitempty"`
}

// SentimentDistribution 情感分布计数
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Add 对应标签计数加一
func (d *SentimentDistribution) Add(s Sentiment) {
	switch s {
	case Positive:
		d.Positive++
	case Negative:
		d.Negative++
	default:
		d.Neutral++
	}
}

// Total 文章总数
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

// ImpactCategory 覆盖差异的影响类别
type ImpactCategory string

const (
	ImpactLegal       ImpactCategory = "legal"
	ImpactFinancial   ImpactCategory = "financial"
	ImpactTechnology  ImpactCategory = "technology"
	ImpactCompetitive ImpactCategory = "competitive"
	ImpactProduct     ImpactCategory = "product"
	ImpactLeadership  ImpactCategory = "leadership"
	ImpactDefault     ImpactCategory = "default"
)

// CoverageDifference 相邻两篇文章之间的话题差异
type CoverageDifference struct {
	Index      int            `json:"index"`
	PrevIndex  int            `json:"prev_index"`
	Topics     []string       `json:"topics"`
	Comparison string         `json:"comparison"`
	Category   ImpactCategory `json:"impact_category"`
	Impact     string         `json:"impact"`
}

// TopicOverlap 话题重叠情况
type TopicOverlap struct {
	Common []string `json:"common"`
	Unique []string `json:"unique"`
}

// Report 一次报告生成的完整结果
type Report struct {
	ID              int                   `json:"id,omitempty"` // 持久化后的 ID，未保存时为 0
	Company         string                `json:"company"`
	Records         []ArticleRecord       `json:"records"`
	Distribution    SentimentDistribution `json:"distribution"`
	Differences     []CoverageDifference  `json:"differences"`
	Overlap         TopicOverlap          `json:"overlap"`
	Verdict         Sentiment             `json:"verdict"`
	VerdictSentence string                `json:"verdict_sentence"`
	Text            string                `json:"text"`
}

// Empty 没有任何已采纳文章
func (r *Report) Empty() bool {
	return len(r.Records) == 0
}

// Narration 语音播报结果：成功时为文件句柄，失败时为失败标记
type Narration struct {
	Handle string `json:"handle,omitempty"`
	Failed bool   `json:"failed"`
	Err    error  `json:"-"`
}

// NarrationFailed 构造失败标记
func NarrationFailed(err error) Narration {
	return Narration{Failed: true, Err: err}
}
