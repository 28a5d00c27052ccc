package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/display/internal/domain"
	"github.com/Varuni13/news_summarizer/app/display/internal/repo"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/config"
)

// DefaultPageSize 列表默认分页大小
const DefaultPageSize = 10

// ReportUseCase 报告业务逻辑
type ReportUseCase struct {
	repo      repo.ReportRepo
	generator repo.ReportGenerator
	log       *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例
func NewReportUseCase(repo repo.ReportRepo, generator repo.ReportGenerator, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, generator: generator, log: log.NewHelper(logger)}
}

// List 分页列出报告摘要
func (uc *ReportUseCase) List(ctx context.Context, page, pageSize int) ([]*domain.ReportSummary, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return uc.repo.ListReports(ctx, page, pageSize)
}

// GetByID 根据ID获取报告详情
func (uc *ReportUseCase) GetByID(ctx context.Context, id int) (*domain.Report, error) {
	if id < 1 {
		return nil, errors.BadRequest("INVALID_ID", "report id must be positive")
	}
	return uc.repo.GetReportByID(ctx, id)
}

// Generate 为公司生成报告，limit 为 0 时取默认值，取值范围 1..MaxLimit
func (uc *ReportUseCase) Generate(ctx context.Context, company string, limit int) (*domain.Report, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, errors.BadRequest("INVALID_COMPANY", "company is required")
	}
	if limit == 0 {
		limit = config.DefaultLimit
	}
	if limit < 1 || limit > config.MaxLimit {
		return nil, errors.BadRequest("INVALID_LIMIT", fmt.Sprintf("limit must be between 1 and %d", config.MaxLimit))
	}

	uc.log.WithContext(ctx).Infof("generating report for %s (limit %d)", company, limit)
	r, err := uc.generator.Generate(ctx, company, limit)
	if err != nil {
		return nil, err
	}
	if r.NarrationFailed {
		uc.log.WithContext(ctx).Warnf("narration failed for %s: %s", company, r.NarrationError)
	}
	return r, nil
}
