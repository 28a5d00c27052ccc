package analysis

import (
	"fmt"
	"strings"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// NoArticlesText 没有任何可用文章时的报告
const NoArticlesText = "No articles found."

const (
	longRule  = "--------------------------------------------------"
	shortRule = "----------"
	diffRule  = "  ----------------------------"
)

// VerdictSentence 生成交给语音播报的结论句。
// 第二句固定输出，与实际分布是否均衡无关。
func VerdictSentence(company string, verdict model.Sentiment) string {
	return fmt.Sprintf("Based on the analysis of the articles, the news coverage of %s is mostly %s. There is a balanced sentiment coverage with mixed perspectives.",
		company, strings.ToLower(string(verdict)))
}

// Accumulator 单次报告生成的累加器，不可跨调用复用
type Accumulator struct {
	company      string
	records      []model.ArticleRecord
	distribution model.SentimentDistribution
}

// NewAccumulator 创建累加器
func NewAccumulator(company string) *Accumulator {
	return &Accumulator{company: company}
}

// Add 一次性提交一篇文章的记录与情感计数
func (a *Accumulator) Add(rec model.ArticleRecord) {
	a.records = append(a.records, rec)
	a.distribution.Add(rec.Sentiment)
}

// Len 已采纳的文章数
func (a *Accumulator) Len() int { return len(a.records) }

// Finish 计算差异、重叠与结论并渲染报告
func (a *Accumulator) Finish() *model.Report {
	return Summarize(a.company, a.records, a.distribution)
}

// Summarize 根据有序的文章记录生成完整报告
func Summarize(company string, records []model.ArticleRecord, dist model.SentimentDistribution) *model.Report {
	report := &model.Report{
		Company:      company,
		Records:      records,
		Distribution: dist,
	}
	if len(records) == 0 {
		report.Verdict = model.Neutral
		report.Text = NoArticlesText
		return report
	}

	topics := make([][]string, len(records))
	for i, r := range records {
		topics[i] = r.Topics
	}
	report.Differences = CoverageDifferences(topics, company)
	report.Overlap = Overlap(topics)
	report.Verdict = FinalVerdict(dist)
	report.VerdictSentence = VerdictSentence(company, report.Verdict)
	report.Text = Render(report)
	return report
}

// Render 按固定顺序渲染报告文本：文章、分布、覆盖差异、话题重叠、结论
func Render(r *model.Report) string {
	if r.Empty() {
		return NoArticlesText
	}

	var sb strings.Builder
	for _, rec := range r.Records {
		fmt.Fprintf(&sb, "**Title**: %s\n\n", rec.Title)
		fmt.Fprintf(&sb, "**Summary**: %s\n\n", rec.Summary)
		fmt.Fprintf(&sb, "**Sentiment**: %s\n\n", rec.Sentiment)
		fmt.Fprintf(&sb, "**Keywords**: %s\n", strings.Join(rec.Topics, ","))
		sb.WriteString("\n")
		sb.WriteString(longRule + "\n")
	}

	sb.WriteString("\nComparative Sentiment Score:\n")
	fmt.Fprintf(&sb, "\nSentiment Distribution: %s\n", formatDistribution(r.Distribution))
	sb.WriteString("\n")
	sb.WriteString(longRule + "\n")
	sb.WriteString("\n")

	sb.WriteString("\n")
	sb.WriteString("\nCoverage Differences:\n")
	for _, d := range r.Differences {
		sb.WriteString("\n")
		sb.WriteString(diffRule + "\n\n")
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  **Comparison**: %s\n", d.Comparison)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  **Impact**: %s\n", d.Impact)
		sb.WriteString("\n")
		sb.WriteString(diffRule + "\n\n")
	}

	sb.WriteString(shortRule + "\n")
	sb.WriteString("\nTopic Overlap:\n")
	fmt.Fprintf(&sb, "\nCommon Topics: %s\n", strings.Join(r.Overlap.Common, ", "))
	fmt.Fprintf(&sb, "\nUnique Topics in All Articles: %s\n", strings.Join(r.Overlap.Unique, ", "))
	sb.WriteString("\n")
	sb.WriteString(shortRule + "\n")

	fmt.Fprintf(&sb, "**Final Sentiment Analysis**: %s\n", r.VerdictSentence)
	return sb.String()
}

func formatDistribution(d model.SentimentDistribution) string {
	return fmt.Sprintf("{'Positive': %d, 'Negative': %d, 'Neutral': %d}", d.Positive, d.Negative, d.Neutral)
}
