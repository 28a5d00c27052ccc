package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/analysis"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/narration"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/nlp"
)

var (
	// ErrInvalidLimit 文章数量上限小于 1
	ErrInvalidLimit = errors.New("limit must be at least 1")
	// ErrFetch 新闻源请求失败
	ErrFetch = errors.New("fetch articles failed")
	// ErrNoArticles 没有可用文章，不进行播报
	ErrNoArticles = errors.New("no articles found")
	// ErrNarrationDisabled 未配置播报
	ErrNarrationDisabled = errors.New("narration disabled")
)

// ReportStore 报告持久化
type ReportStore interface {
	SaveReport(ctx context.Context, r *model.Report, n model.Narration) (int, error)
}

// Deps 引擎依赖的协作者，Narrator 与 Store 可以为空
type Deps struct {
	Fetcher   news.Fetcher
	Language  nlp.LanguageDetector
	Keywords  nlp.KeywordExtractor
	Entities  nlp.EntityExtractor
	Sentiment nlp.SentimentAnalyzer
	Narrator  narration.Narrator
	Store     ReportStore
}

// Engine 报告生成引擎，只持有不可变的协作者，可并发调用
type Engine struct {
	fetcher   news.Fetcher
	language  nlp.LanguageDetector
	keywords  nlp.KeywordExtractor
	entities  nlp.EntityExtractor
	sentiment nlp.SentimentAnalyzer
	narrator  narration.Narrator
	store     ReportStore
}

// New 创建引擎
func New(d Deps) *Engine {
	return &Engine{
		fetcher:   d.Fetcher,
		language:  d.Language,
		keywords:  d.Keywords,
		entities:  d.Entities,
		sentiment: d.Sentiment,
		narrator:  d.Narrator,
		store:     d.Store,
	}
}

// GenerateReport 获取公司新闻，最多采纳 limit 篇文章生成报告并播报结论。
// 被跳过的文章不计入 limit。没有可用文章时返回哨兵报告与失败标记，不调用播报。
func (e *Engine) GenerateReport(ctx context.Context, company string, limit int) (*model.Report, model.Narration, error) {
	if limit < 1 {
		return nil, model.Narration{}, ErrInvalidLimit
	}
	company = strings.TrimSpace(company)
	logger.Log.Infof("开始为 [%s] 生成报告，最多 %d 篇文章", company, limit)

	articles, err := e.fetcher.Fetch(ctx, company)
	if err != nil {
		return nil, model.Narration{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	logger.Log.Infof("[%s] 获取到 %d 篇候选文章", company, len(articles))

	acc := analysis.NewAccumulator(company)
	for i, art := range articles {
		if acc.Len() >= limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, model.Narration{}, err
		}
		rec, ok := e.analyze(ctx, i, art)
		if !ok {
			continue
		}
		// 协作者调用期间被取消时丢弃这篇文章，不做部分提交
		if err := ctx.Err(); err != nil {
			return nil, model.Narration{}, err
		}
		acc.Add(rec)
	}

	report := acc.Finish()
	if report.Empty() {
		// 没有可用文章时到此为止：不播报，也不保存
		logger.Log.Warnf("[%s] 没有可用文章", company)
		return report, model.NarrationFailed(ErrNoArticles), nil
	}
	logger.Log.Infof("[%s] 采纳 %d 篇文章，结论: %s", company, len(report.Records), report.Verdict)

	n := e.narrate(ctx, report.VerdictSentence)
	e.save(ctx, report, n)
	return report, n, nil
}

// analyze 处理单篇文章，任何一步失败都视为跳过。
// 去掉首尾空白只用于判空，记录中保留原始摘要
func (e *Engine) analyze(ctx context.Context, i int, art model.Article) (model.ArticleRecord, bool) {
	if strings.TrimSpace(art.Summary) == "" {
		logger.Log.Debugf("跳过第 %d 篇文章: 摘要为空", i)
		return model.ArticleRecord{}, false
	}
	summary := art.Summary
	if !e.language.IsEnglish(strings.TrimSpace(summary)) {
		logger.Log.Debugf("跳过第 %d 篇文章: 非英文", i)
		return model.ArticleRecord{}, false
	}

	score, err := e.sentiment.Compound(ctx, summary)
	if err != nil {
		logger.Log.Warnf("跳过第 %d 篇文章，情感分析失败: %v", i, err)
		return model.ArticleRecord{}, false
	}
	keywords, err := e.keywords.ExtractKeywords(ctx, summary)
	if err != nil {
		logger.Log.Warnf("跳过第 %d 篇文章，关键词抽取失败: %v", i, err)
		return model.ArticleRecord{}, false
	}
	entities, err := e.entities.ExtractEntities(ctx, summary)
	if err != nil {
		logger.Log.Warnf("跳过第 %d 篇文章，实体抽取失败: %v", i, err)
		return model.ArticleRecord{}, false
	}

	return model.ArticleRecord{
		Title:     art.DisplayTitle(),
		Summary:   summary,
		Sentiment: analysis.Classify(score),
		Score:     score,
		Topics:    analysis.BuildTopics(keywords, entities),
		URL:       art.URL,
	}, true
}

func (e *Engine) narrate(ctx context.Context, sentence string) model.Narration {
	if e.narrator == nil {
		return model.NarrationFailed(ErrNarrationDisabled)
	}
	handle, err := e.narrator.Narrate(ctx, sentence)
	if err != nil {
		logger.Log.Errorf("语音播报失败: %v", err)
		return model.NarrationFailed(err)
	}
	logger.Log.Infof("语音播报已生成: %s", handle)
	return model.Narration{Handle: handle}
}

// save 保存失败只记录日志，不影响返回的报告
func (e *Engine) save(ctx context.Context, r *model.Report, n model.Narration) {
	if e.store == nil {
		return
	}
	id, err := e.store.SaveReport(ctx, r, n)
	if err != nil {
		logger.Log.Errorf("保存报告失败 [%s]: %v", r.Company, err)
		return
	}
	r.ID = id
}
