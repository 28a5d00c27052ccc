package data

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/display/internal/domain"
	"github.com/Varuni13/news_summarizer/app/display/internal/repo"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// reportStore 报告读取接口，由 storage.Storage 实现
type reportStore interface {
	ListReports(ctx context.Context, page, pageSize int) ([]*storage.ReportSummary, int, error)
	GetReport(ctx context.Context, id int) (*storage.StoredReport, error)
}

type reportRepo struct {
	store reportStore
	log   *log.Helper
}

// NewReportRepo 创建报告仓库
func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		store: data.store,
		log:   log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	rows, total, err := r.store.ListReports(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*domain.ReportSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &domain.ReportSummary{
			ID:           row.ID,
			Company:      row.Company,
			Verdict:      string(row.Verdict),
			ArticleCount: row.ArticleCount,
			CreatedAt:    row.CreatedAt.Format(timeLayout),
		})
	}
	return summaries, total, nil
}

func (r *reportRepo) GetReportByID(ctx context.Context, id int) (*domain.Report, error) {
	stored, err := r.store.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, kerrors.NotFound("REPORT_NOT_FOUND", "report not found")
		}
		return nil, err
	}

	out := toDomain(stored.Report, stored.Narration)
	out.CreatedAt = stored.CreatedAt.Format(timeLayout)
	return out, nil
}

// toDomain 把引擎报告转换为展示层对象
func toDomain(r *model.Report, n model.Narration) *domain.Report {
	out := &domain.Report{
		ID:              r.ID,
		Company:         r.Company,
		Verdict:         string(r.Verdict),
		VerdictSentence: r.VerdictSentence,
		Positive:        r.Distribution.Positive,
		Negative:        r.Distribution.Negative,
		Neutral:         r.Distribution.Neutral,
		Articles:        make([]domain.Article, 0, len(r.Records)),
		Differences:     make([]domain.CoverageDifference, 0, len(r.Differences)),
		CommonTopics:    r.Overlap.Common,
		UniqueTopics:    r.Overlap.Unique,
		Text:            r.Text,
		Audio:           n.Handle,
		NarrationFailed: n.Failed,
	}
	if n.Err != nil {
		out.NarrationError = n.Err.Error()
	}
	for _, rec := range r.Records {
		out.Articles = append(out.Articles, domain.Article{
			Title:     rec.Title,
			Summary:   rec.Summary,
			Sentiment: string(rec.Sentiment),
			Score:     rec.Score,
			Topics:    rec.Topics,
			URL:       rec.URL,
		})
	}
	for _, d := range r.Differences {
		out.Differences = append(out.Differences, domain.CoverageDifference{
			Comparison: d.Comparison,
			Category:   string(d.Category),
			Impact:     d.Impact,
		})
	}
	return out
}
