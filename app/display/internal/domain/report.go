package domain

// Article 报告中的单篇文章
type Article struct {
	Title     string
	Summary   string
	Sentiment string
	Score     float64
	Topics    []string
	URL       string
}

// CoverageDifference 相邻文章的话题差异
type CoverageDifference struct {
	Comparison string
	Category   string
	Impact     string
}

// ReportSummary 报告摘要信息
type ReportSummary struct {
	ID           int
	Company      string
	Verdict      string
	ArticleCount int
	CreatedAt    string
}

// Report 报告详情
type Report struct {
	ID              int
	Company         string
	Verdict         string
	VerdictSentence string
	Positive        int
	Negative        int
	Neutral         int
	Articles        []Article
	Differences     []CoverageDifference
	CommonTopics    []string
	UniqueTopics    []string
	Text            string
	Audio           string
	NarrationFailed bool
	NarrationError  string
	CreatedAt       string
}
