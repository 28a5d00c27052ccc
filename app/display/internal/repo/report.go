package repo

import (
	"context"

	"github.com/Varuni13/news_summarizer/app/display/internal/domain"
)

// ReportRepo 报告仓库接口
type ReportRepo interface {
	// ListReports 分页获取报告摘要列表
	ListReports(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error)
	// GetReportByID 根据ID获取报告详情
	GetReportByID(ctx context.Context, id int) (*domain.Report, error)
}

// ReportGenerator 按公司名即时生成报告
type ReportGenerator interface {
	Generate(ctx context.Context, company string, limit int) (*domain.Report, error)
}
