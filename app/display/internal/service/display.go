package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/display/internal/domain"
	"github.com/Varuni13/news_summarizer/app/display/internal/usecase"
)

// GenerateReportReq POST /v1/reports 请求体
type GenerateReportReq struct {
	Company string `json:"company"`
	Limit   int32  `json:"limit"`
}

// ListReportsReq GET /v1/reports 查询参数
type ListReportsReq struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

// GetReportReq GET /v1/reports/{id} 路径参数
type GetReportReq struct {
	Id int32 `json:"id"`
}

type Article struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Score     float64  `json:"score"`
	Topics    []string `json:"topics"`
	Url       string   `json:"url,omitempty"`
}

type CoverageDifference struct {
	Comparison string `json:"comparison"`
	Category   string `json:"category"`
	Impact     string `json:"impact"`
}

type Distribution struct {
	Positive int32 `json:"positive"`
	Negative int32 `json:"negative"`
	Neutral  int32 `json:"neutral"`
}

// ReportReply 报告详情
type ReportReply struct {
	Id                  int32                 `json:"id,omitempty"`
	Company             string                `json:"company"`
	FinalSentiment      string                `json:"final_sentiment"`
	FinalAnalysis       string                `json:"final_analysis"`
	Distribution        Distribution          `json:"sentiment_distribution"`
	Articles            []*Article            `json:"articles"`
	CoverageDifferences []*CoverageDifference `json:"coverage_differences"`
	CommonTopics        []string              `json:"common_topics"`
	UniqueTopics        []string              `json:"unique_topics"`
	Text                string                `json:"text"`
	Audio               string                `json:"audio,omitempty"`
	NarrationFailed     bool                  `json:"narration_failed"`
	NarrationError      string                `json:"narration_error,omitempty"`
	CreatedAt           string                `json:"created_at,omitempty"`
}

type ReportSummary struct {
	Id             int32  `json:"id"`
	Company        string `json:"company"`
	FinalSentiment string `json:"final_sentiment"`
	ArticleCount   int32  `json:"article_count"`
	CreatedAt      string `json:"created_at"`
}

type ListReportsReply struct {
	Reports []*ReportSummary `json:"reports"`
	Total   int32            `json:"total"`
}

// DisplayService 报告 HTTP 服务
type DisplayService struct {
	ucReport *usecase.ReportUseCase
	log      *log.Helper
}

func NewDisplayService(ucReport *usecase.ReportUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucReport: ucReport,
		log:      log.NewHelper(logger),
	}
}

func (s *DisplayService) GenerateReport(ctx context.Context, req *GenerateReportReq) (*ReportReply, error) {
	r, err := s.ucReport.Generate(ctx, req.Company, int(req.Limit))
	if err != nil {
		return nil, err
	}
	return toReply(r), nil
}

func (s *DisplayService) ListReports(ctx context.Context, req *ListReportsReq) (*ListReportsReply, error) {
	reports, total, err := s.ucReport.List(ctx, int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, err
	}

	list := make([]*ReportSummary, 0, len(reports))
	for _, r := range reports {
		list = append(list, &ReportSummary{
			Id:             int32(r.ID),
			Company:        r.Company,
			FinalSentiment: r.Verdict,
			ArticleCount:   int32(r.ArticleCount),
			CreatedAt:      r.CreatedAt,
		})
	}

	return &ListReportsReply{
		Reports: list,
		Total:   int32(total),
	}, nil
}

func (s *DisplayService) GetReport(ctx context.Context, req *GetReportReq) (*ReportReply, error) {
	r, err := s.ucReport.GetByID(ctx, int(req.Id))
	if err != nil {
		return nil, err
	}
	return toReply(r), nil
}

func toReply(r *domain.Report) *ReportReply {
	articles := make([]*Article, 0, len(r.Articles))
	for _, a := range r.Articles {
		articles = append(articles, &Article{
			Title:     a.Title,
			Summary:   a.Summary,
			Sentiment: a.Sentiment,
			Score:     a.Score,
			Topics:    a.Topics,
			Url:       a.URL,
		})
	}
	diffs := make([]*CoverageDifference, 0, len(r.Differences))
	for _, d := range r.Differences {
		diffs = append(diffs, &CoverageDifference{
			Comparison: d.Comparison,
			Category:   d.Category,
			Impact:     d.Impact,
		})
	}

	return &ReportReply{
		Id:             int32(r.ID),
		Company:        r.Company,
		FinalSentiment: r.Verdict,
		FinalAnalysis:  r.VerdictSentence,
		Distribution: Distribution{
			Positive: int32(r.Positive),
			Negative: int32(r.Negative),
			Neutral:  int32(r.Neutral),
		},
		Articles:            articles,
		CoverageDifferences: diffs,
		CommonTopics:        r.CommonTopics,
		UniqueTopics:        r.UniqueTopics,
		Text:                r.Text,
		Audio:               r.Audio,
		NarrationFailed:     r.NarrationFailed,
		NarrationError:      r.NarrationError,
		CreatedAt:           r.CreatedAt,
	}
}
