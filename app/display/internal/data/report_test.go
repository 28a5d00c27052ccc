package data

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/engine"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/storage"
)

type fakeStore struct{}

func (fakeStore) ListReports(ctx context.Context, page, pageSize int) ([]*storage.ReportSummary, int, error) {
	return []*storage.ReportSummary{{
		ID: 2, Company: "Apple", Verdict: model.Negative, ArticleCount: 4,
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}}, 1, nil
}

func (fakeStore) GetReport(ctx context.Context, id int) (*storage.StoredReport, error) {
	if id != 2 {
		return nil, storage.ErrNotFound
	}
	return &storage.StoredReport{
		ID:        2,
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Report: &model.Report{
			ID:      2,
			Company: "Apple",
			Verdict: model.Negative,
			Records: []model.ArticleRecord{{Title: "t", Sentiment: model.Negative, Topics: []string{"lawsuit"}}},
			Differences: []model.CoverageDifference{{
				Comparison: "c", Category: model.ImpactLegal, Impact: "i",
			}},
		},
		Narration: model.Narration{Handle: "summary_hindi.mp3"},
	}, nil
}

func TestReportRepo(t *testing.T) {
	r := &reportRepo{store: fakeStore{}, log: log.NewHelper(log.DefaultLogger)}

	list, total, err := r.ListReports(context.Background(), 1, 10)
	if err != nil || total != 1 {
		t.Fatalf("ListReports() = %v, %d, %v", list, total, err)
	}
	if list[0].CreatedAt != "2026-03-01 09:30:00" || list[0].Verdict != "Negative" {
		t.Errorf("unexpected summary %+v", list[0])
	}

	got, err := r.GetReportByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetReportByID() error = %v", err)
	}
	if len(got.Articles) != 1 || got.Differences[0].Category != string(model.ImpactLegal) || got.Audio != "summary_hindi.mp3" {
		t.Errorf("unexpected report %+v", got)
	}

	if _, err := r.GetReportByID(context.Background(), 9); !kerrors.IsNotFound(err) {
		t.Errorf("GetReportByID(9) error = %v, want not found", err)
	}
}

type fakeEngine struct {
	err error
}

func (f fakeEngine) GenerateReport(ctx context.Context, company string, limit int) (*model.Report, model.Narration, error) {
	if f.err != nil {
		return nil, model.Narration{}, f.err
	}
	return &model.Report{Company: company, Verdict: model.Neutral}, model.NarrationFailed(errors.New("tts down")), nil
}

func TestReportGenerator(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"invalid limit", engine.ErrInvalidLimit, kerrors.IsBadRequest},
		{"fetch", fmt.Errorf("%w: %w", engine.ErrFetch, errors.New("timeout")), kerrors.IsServiceUnavailable},
		{"cancelled", context.Canceled, kerrors.IsGatewayTimeout},
		{"other", errors.New("boom"), kerrors.IsInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &reportGenerator{engine: fakeEngine{err: tt.err}, log: log.NewHelper(log.DefaultLogger)}
			if _, err := g.Generate(context.Background(), "Apple", 5); !tt.check(err) {
				t.Errorf("Generate() error = %v", err)
			}
		})
	}

	g := &reportGenerator{engine: fakeEngine{}, log: log.NewHelper(log.DefaultLogger)}
	r, err := g.Generate(context.Background(), "Apple", 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !r.NarrationFailed || r.NarrationError != "tts down" {
		t.Errorf("narration failure not mapped: %+v", r)
	}
}
