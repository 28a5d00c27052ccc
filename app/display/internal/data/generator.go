package data

import (
	"context"
	"errors"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/display/internal/domain"
	"github.com/Varuni13/news_summarizer/app/display/internal/repo"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/engine"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
)

// reportEngine 由 engine.Engine 实现
type reportEngine interface {
	GenerateReport(ctx context.Context, company string, limit int) (*model.Report, model.Narration, error)
}

type reportGenerator struct {
	engine reportEngine
	log    *log.Helper
}

// NewReportGenerator 创建报告生成器
func NewReportGenerator(data *Data, logger log.Logger) repo.ReportGenerator {
	return &reportGenerator{
		engine: data.engine,
		log:    log.NewHelper(logger),
	}
}

func (g *reportGenerator) Generate(ctx context.Context, company string, limit int) (*domain.Report, error) {
	r, n, err := g.engine.GenerateReport(ctx, company, limit)
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrInvalidLimit):
		return nil, kerrors.BadRequest("INVALID_LIMIT", err.Error())
	case errors.Is(err, engine.ErrFetch):
		g.log.WithContext(ctx).Errorf("fetch news for %s failed: %v", company, err)
		return nil, kerrors.ServiceUnavailable("NEWS_UNAVAILABLE", "news source unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, kerrors.GatewayTimeout("REPORT_TIMEOUT", err.Error())
	default:
		return nil, kerrors.InternalServer("REPORT_FAILED", err.Error())
	}
	return toDomain(r, n), nil
}
