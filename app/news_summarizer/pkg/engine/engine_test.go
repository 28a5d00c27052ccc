package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/logger"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/model"
	"github.com/Varuni13/news_summarizer/app/news_summarizer/pkg/news"
)

func init() {
	logger.Discard()
}

// 以 "FR:" 开头的摘要视为非英文
type fakeLanguage struct{}

func (fakeLanguage) IsEnglish(text string) bool { return !strings.HasPrefix(text, "FR:") }

// 关键词为摘要中的小写单词
type fakeKeywords struct{}

func (fakeKeywords) ExtractKeywords(_ context.Context, text string) ([]string, error) {
	if strings.Contains(text, "BROKEN") {
		return nil, errors.New("extractor failed")
	}
	var out []string
	for _, w := range strings.Fields(strings.Trim(text, ".")) {
		if w == strings.ToLower(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// 实体为摘要中首字母大写的单词
type fakeEntities struct{}

func (fakeEntities) ExtractEntities(_ context.Context, text string) ([]string, error) {
	var out []string
	for _, w := range strings.Fields(strings.Trim(text, ".")) {
		if w != strings.ToLower(w) && w != "BROKEN" {
			out = append(out, w)
		}
	}
	return out, nil
}

// 含 good 为正面，含 bad 为负面
type fakeSentiment struct{}

func (fakeSentiment) Compound(_ context.Context, text string) (float64, error) {
	switch {
	case strings.Contains(text, "good"):
		return 0.6, nil
	case strings.Contains(text, "bad"):
		return -0.6, nil
	}
	return 0, nil
}

type fakeNarrator struct {
	calls int
	text  string
	err   error
}

func (f *fakeNarrator) Narrate(_ context.Context, text string) (string, error) {
	f.calls++
	f.text = text
	if f.err != nil {
		return "", f.err
	}
	return "summary_hindi.mp3", nil
}

type fakeStore struct {
	saved []*model.Report
	err   error
}

func (f *fakeStore) SaveReport(_ context.Context, r *model.Report, _ model.Narration) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, r)
	return len(f.saved), nil
}

func staticFetcher(articles ...model.Article) news.Fetcher {
	return news.FetcherFunc(func(context.Context, string) ([]model.Article, error) {
		return articles, nil
	})
}

func newEngine(f news.Fetcher, n *fakeNarrator, s *fakeStore) *Engine {
	d := Deps{
		Fetcher:   f,
		Language:  fakeLanguage{},
		Keywords:  fakeKeywords{},
		Entities:  fakeEntities{},
		Sentiment: fakeSentiment{},
	}
	if n != nil {
		d.Narrator = n
	}
	if s != nil {
		d.Store = s
	}
	return New(d)
}

func TestGenerateReport(t *testing.T) {
	articles := []model.Article{
		{Title: "One", Summary: "good revenue Apple."},
		{Title: "Skipped empty", Summary: "  "},
		{Title: "Skipped french", Summary: "FR: bonne nouvelle."},
		{Title: "", Summary: "bad lawsuit Apple."},
		{Title: "Skipped broken", Summary: "BROKEN thing."},
		{Title: "Three", Summary: "good launch Apple."},
		{Title: "Beyond limit", Summary: "good profits."},
	}
	narrator := &fakeNarrator{}
	store := &fakeStore{}
	e := newEngine(staticFetcher(articles...), narrator, store)

	report, n, err := e.GenerateReport(context.Background(), "Apple", 3)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	var titles []string
	for _, r := range report.Records {
		titles = append(titles, r.Title)
	}
	if diff := cmp.Diff([]string{"One", "No title", "Three"}, titles); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	want := model.SentimentDistribution{Positive: 2, Negative: 1}
	if report.Distribution != want {
		t.Errorf("Distribution = %+v, want %+v", report.Distribution, want)
	}
	if report.Verdict != model.Positive {
		t.Errorf("Verdict = %s, want Positive", report.Verdict)
	}
	if diff := cmp.Diff([]string{"good", "revenue", "Apple"}, report.Records[0].Topics); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}

	for _, skipped := range []string{"Skipped", "bonne", "BROKEN", "Beyond", "profits"} {
		if strings.Contains(report.Text, skipped) {
			t.Errorf("report text mentions skipped article content %q", skipped)
		}
	}

	if narrator.calls != 1 || narrator.text != report.VerdictSentence {
		t.Errorf("narrator calls = %d, text = %q", narrator.calls, narrator.text)
	}
	if n.Failed || n.Handle != "summary_hindi.mp3" {
		t.Errorf("unexpected narration %+v", n)
	}
	if len(store.saved) != 1 || report.ID != 1 {
		t.Errorf("expected report to be saved, got %d saves, id %d", len(store.saved), report.ID)
	}
}

func TestGenerateReportNoArticles(t *testing.T) {
	narrator := &fakeNarrator{}
	store := &fakeStore{}
	e := newEngine(staticFetcher(
		model.Article{Title: "a", Summary: ""},
		model.Article{Title: "b", Summary: "FR: rien."},
	), narrator, store)

	report, n, err := e.GenerateReport(context.Background(), "Apple", 5)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if report.Text != "No articles found." {
		t.Errorf("Text = %q", report.Text)
	}
	if !n.Failed || !errors.Is(n.Err, ErrNoArticles) {
		t.Errorf("expected failure marker, got %+v", n)
	}
	if narrator.calls != 0 {
		t.Errorf("narrator called %d times, want 0", narrator.calls)
	}
	if len(store.saved) != 0 || report.ID != 0 {
		t.Errorf("empty report should not be saved, got %d saves", len(store.saved))
	}
}

func TestGenerateReportKeepsRawSummary(t *testing.T) {
	raw := "  good revenue Apple.\n"
	e := newEngine(staticFetcher(model.Article{Title: "x", Summary: raw}), &fakeNarrator{}, nil)

	report, _, err := e.GenerateReport(context.Background(), "Apple", 5)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if len(report.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(report.Records))
	}
	if report.Records[0].Summary != raw {
		t.Errorf("Summary = %q, want %q", report.Records[0].Summary, raw)
	}
	if !strings.Contains(report.Text, "**Summary**: "+raw+"\n\n") {
		t.Error("rendered report should carry the summary as fetched")
	}
}

func TestGenerateReportNarrationFailure(t *testing.T) {
	boom := errors.New("tts down")
	e := newEngine(staticFetcher(model.Article{Title: "x", Summary: "bad news."}), &fakeNarrator{err: boom}, nil)

	report, n, err := e.GenerateReport(context.Background(), "Tesla", 5)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if report.Empty() || report.Verdict != model.Negative {
		t.Errorf("expected full report, got %+v", report)
	}
	if !n.Failed || !errors.Is(n.Err, boom) {
		t.Errorf("expected narration failure marker, got %+v", n)
	}
}

func TestGenerateReportWithoutNarrator(t *testing.T) {
	e := newEngine(staticFetcher(model.Article{Title: "x", Summary: "good news."}), nil, nil)
	_, n, err := e.GenerateReport(context.Background(), "Tesla", 1)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if !n.Failed || !errors.Is(n.Err, ErrNarrationDisabled) {
		t.Errorf("expected disabled marker, got %+v", n)
	}
}

func TestGenerateReportInvalidLimit(t *testing.T) {
	e := newEngine(staticFetcher(), nil, nil)
	for _, limit := range []int{0, -3} {
		if _, _, err := e.GenerateReport(context.Background(), "Apple", limit); !errors.Is(err, ErrInvalidLimit) {
			t.Errorf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}
}

func TestGenerateReportFetchError(t *testing.T) {
	upstream := &news.StatusError{Provider: "newsapi", Code: 500}
	f := news.FetcherFunc(func(context.Context, string) ([]model.Article, error) {
		return nil, upstream
	})
	_, _, err := newEngine(f, nil, nil).GenerateReport(context.Background(), "Apple", 5)
	if !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
	var se *news.StatusError
	if !errors.As(err, &se) {
		t.Errorf("expected wrapped StatusError, got %v", err)
	}
}

func TestGenerateReportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := newEngine(staticFetcher(model.Article{Title: "x", Summary: "good news."}), &fakeNarrator{}, nil)
	if _, _, err := e.GenerateReport(ctx, "Apple", 5); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateReportStoreFailureIgnored(t *testing.T) {
	e := newEngine(staticFetcher(model.Article{Title: "x", Summary: "good news."}), &fakeNarrator{}, &fakeStore{err: errors.New("db down")})
	report, _, err := e.GenerateReport(context.Background(), "Apple", 5)
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}
	if report.ID != 0 {
		t.Errorf("ID = %d, want 0", report.ID)
	}
}

func TestGenerateReportIdempotent(t *testing.T) {
	articles := []model.Article{
		{Title: "A", Summary: "good revenue Apple."},
		{Title: "B", Summary: "bad lawsuit Apple."},
	}
	e := newEngine(staticFetcher(articles...), &fakeNarrator{}, nil)
	r1, _, _ := e.GenerateReport(context.Background(), "Apple", 5)
	r2, _, _ := e.GenerateReport(context.Background(), "Apple", 5)
	if r1.Text != r2.Text {
		t.Error("report text differs between identical runs")
	}
}
